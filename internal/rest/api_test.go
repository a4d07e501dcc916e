package rest_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"myRoomStore/app/echo-server/router"
	cartService "myRoomStore/business/cart"
	ordersService "myRoomStore/business/orders"
	productService "myRoomStore/business/product"
	userService "myRoomStore/business/user"
	wishlistService "myRoomStore/business/wishlist"
	"myRoomStore/domain"
	"myRoomStore/internal/middleware"
	psqlRepo "myRoomStore/internal/repository/postgres"
	"myRoomStore/internal/rest"
	"myRoomStore/pkg/database"
	"myRoomStore/pkg/utils"
)

// newTestServer wires the full HTTP surface against an in-memory database,
// the same way main does.
func newTestServer(t *testing.T) (*echo.Echo, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	utils.InitJWT("test-secret", 15*time.Minute, time.Hour)

	validate := validator.New()

	userRepo := psqlRepo.NewUserRepository(db)
	tokenRepo := psqlRepo.NewTokenRepository(db)
	productRepo := psqlRepo.NewProductRepository(db)
	wishlistRepo := psqlRepo.NewWishlistRepository(db)
	cartRepo := psqlRepo.NewCartRepository(db)
	ordersRepo := psqlRepo.NewOrdersRepository(db)

	users := userService.NewUserService(userRepo, tokenRepo, nil, validate)
	products := productService.NewProductService(productRepo)
	wishlists := wishlistService.NewWishlistService(wishlistRepo, productRepo)
	carts := cartService.NewCartService(cartRepo, productRepo)
	orders := ordersService.NewOrdersService(ordersRepo, userRepo, nil)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = middleware.ErrorHandler

	authRequired := middleware.AuthMiddleware()
	staffOnly := middleware.StaffOnly()

	userHandler := rest.NewUserHandler(users)
	router.SetupAuthRoutes(e, userHandler, authRequired)
	router.SetupUserRoutes(e, userHandler, authRequired, staffOnly)
	router.SetupProductRoutes(e, rest.NewProductHandler(products), authRequired, staffOnly)
	router.SetupWishlistRoutes(e, rest.NewWishlistHandler(wishlists), authRequired)
	router.SetupCartRoutes(e, rest.NewCartHandler(carts), authRequired)
	router.SetupOrdersRoutes(e, rest.NewOrdersHandler(orders), authRequired)

	return e, db
}

func doRequest(e *echo.Echo, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode response body %q: %v", rec.Body.String(), err)
	}

	return body
}

// registerAndLogin creates an account through the public endpoints and
// returns its access and refresh tokens.
func registerAndLogin(t *testing.T, e *echo.Echo, username string) (access, refresh string) {
	t.Helper()

	payload := fmt.Sprintf(`{"username":%q,"email":"%s@example.com","password":"secret123"}`, username, username)
	rec := doRequest(e, http.MethodPost, "/register/", payload, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("Failed to register %s: %d %s", username, rec.Code, rec.Body.String())
	}

	login := fmt.Sprintf(`{"username":%q,"password":"secret123"}`, username)
	rec = doRequest(e, http.MethodPost, "/login/", login, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Failed to login %s: %d %s", username, rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	tokens := body["tokens"].(map[string]interface{})
	return tokens["access"].(string), tokens["refresh"].(string)
}

// loginStaff promotes an already-registered account to staff and logs in
// again so the new capability lands in the token.
func loginStaff(t *testing.T, e *echo.Echo, db *gorm.DB, username string) string {
	t.Helper()

	registerAndLogin(t, e, username)
	if err := db.Model(&domain.User{}).Where("username = ?", username).
		Update("is_staff", true).Error; err != nil {
		t.Fatalf("Failed to promote %s: %v", username, err)
	}

	login := fmt.Sprintf(`{"username":%q,"password":"secret123"}`, username)
	rec := doRequest(e, http.MethodPost, "/login/", login, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Failed to re-login %s: %d %s", username, rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	return body["tokens"].(map[string]interface{})["access"].(string)
}

func TestRegisterEndpoint(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doRequest(e, http.MethodPost, "/register/",
		`{"username":"fresh","email":"fresh@example.com","password":"secret123"}`, "")
	assert.Equal(t, http.StatusCreated, rec.Code)

	// Same username again.
	rec = doRequest(e, http.MethodPost, "/register/",
		`{"username":"fresh","email":"other@example.com","password":"secret123"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Invalid payload.
	rec = doRequest(e, http.MethodPost, "/register/",
		`{"username":"x","email":"bad","password":"short"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginEndpoint(t *testing.T) {
	e, db := newTestServer(t)

	registerAndLogin(t, e, "dweller")

	rec := doRequest(e, http.MethodPost, "/login/",
		`{"username":"dweller","password":"wrong"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	require.NoError(t, db.Model(&domain.User{}).Where("username = ?", "dweller").
		Update("is_blocked", true).Error)

	rec = doRequest(e, http.MethodPost, "/login/",
		`{"username":"dweller","password":"secret123"}`, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestLoginResponseOmitsPassword(t *testing.T) {
	e, _ := newTestServer(t)

	registerAndLogin(t, e, "careful")

	rec := doRequest(e, http.MethodPost, "/login/",
		`{"username":"careful","password":"secret123"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")
	assert.NotContains(t, rec.Body.String(), "secret123")
}

func TestRefreshAndLogoutFlow(t *testing.T) {
	e, _ := newTestServer(t)

	access, refresh := registerAndLogin(t, e, "sessioned")

	// Refresh works while the token is live.
	rec := doRequest(e, http.MethodPost, "/token/refresh/",
		fmt.Sprintf(`{"refresh":%q}`, refresh), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, decodeBody(t, rec)["access"])

	// An access token is not accepted as a refresh token.
	rec = doRequest(e, http.MethodPost, "/token/refresh/",
		fmt.Sprintf(`{"refresh":%q}`, access), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Logout revokes the refresh token.
	rec = doRequest(e, http.MethodPost, "/logout/",
		fmt.Sprintf(`{"refresh":%q}`, refresh), access)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(e, http.MethodPost, "/token/refresh/",
		fmt.Sprintf(`{"refresh":%q}`, refresh), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Logout again with the same token still succeeds.
	rec = doRequest(e, http.MethodPost, "/logout/",
		fmt.Sprintf(`{"refresh":%q}`, refresh), access)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLogoutRequiresAuth(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doRequest(e, http.MethodPost, "/logout/", `{"refresh":"whatever"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProductListingAnonymous(t *testing.T) {
	e, db := newTestServer(t)
	staffToken := loginStaff(t, e, db, "keeper")

	for _, payload := range []string{
		`{"title":"Velvet Sofa","price":"250.00","room":"living room","stock":3}`,
		`{"title":"Oak Table","price":"120.00","room":"dining room","stock":5}`,
		`{"title":"Retired Sofa","price":"10.00","room":"living room","stock":0,"is_archived":true}`,
	} {
		rec := doRequest(e, http.MethodPost, "/products/", payload, staffToken)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	// Anonymous search: archived rows hidden, match is case-insensitive.
	rec := doRequest(e, http.MethodGet, "/products/?search=sofa", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	products := decodeBody(t, rec)["products"].([]interface{})
	assert.Len(t, products, 1)

	// Staff sees the archived row too.
	rec = doRequest(e, http.MethodGet, "/products/?search=sofa", "", staffToken)
	require.Equal(t, http.StatusOK, rec.Code)
	products = decodeBody(t, rec)["products"].([]interface{})
	assert.Len(t, products, 2)
}

func TestProductWritesAreStaffOnly(t *testing.T) {
	e, _ := newTestServer(t)
	userToken, _ := registerAndLogin(t, e, "plainuser")

	payload := `{"title":"Bench","price":"30.00","stock":1}`

	rec := doRequest(e, http.MethodPost, "/products/", payload, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(e, http.MethodPost, "/products/", payload, userToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestProductInvalidPrice(t *testing.T) {
	e, db := newTestServer(t)
	staffToken := loginStaff(t, e, db, "keeper")

	rec := doRequest(e, http.MethodPost, "/products/",
		`{"title":"Bench","price":"not-a-number","stock":1}`, staffToken)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func seedProduct(t *testing.T, db *gorm.DB, title, price string) domain.Product {
	t.Helper()

	p := domain.Product{Title: title, Price: decimal.RequireFromString(price), Room: "living room", Stock: 10}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("Failed to seed product: %v", err)
	}

	return p
}

func TestWishlistOwnershipIsolation(t *testing.T) {
	e, db := newTestServer(t)

	aliceToken, _ := registerAndLogin(t, e, "alice")
	bobToken, _ := registerAndLogin(t, e, "bob")
	product := seedProduct(t, db, "Armchair", "80.00")

	rec := doRequest(e, http.MethodPost, "/wishlist/",
		fmt.Sprintf(`{"product_id":%d}`, product.ID), aliceToken)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// Duplicate add is rejected.
	rec = doRequest(e, http.MethodPost, "/wishlist/",
		fmt.Sprintf(`{"product_id":%d}`, product.ID), aliceToken)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var item domain.WishlistItem
	require.NoError(t, db.Where("product_id = ?", product.ID).First(&item).Error)

	// Bob cannot see or delete Alice's entry.
	rec = doRequest(e, http.MethodGet, fmt.Sprintf("/wishlist/%d/", item.ID), "", bobToken)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(e, http.MethodDelete, fmt.Sprintf("/wishlist/%d/", item.ID), "", bobToken)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(e, http.MethodGet, "/wishlist/", "", bobToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "Armchair")

	// Alice can.
	rec = doRequest(e, http.MethodDelete, fmt.Sprintf("/wishlist/%d/", item.ID), "", aliceToken)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCartQuantityValidation(t *testing.T) {
	e, db := newTestServer(t)

	token, _ := registerAndLogin(t, e, "shopper")
	product := seedProduct(t, db, "Stool", "25.00")

	rec := doRequest(e, http.MethodPost, "/cart/",
		fmt.Sprintf(`{"product_id":%d,"quantity":0}`, product.ID), token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(e, http.MethodPost, "/cart/",
		fmt.Sprintf(`{"product_id":%d,"quantity":2}`, product.ID), token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var item domain.CartItem
	require.NoError(t, db.Where("product_id = ?", product.ID).First(&item).Error)

	rec = doRequest(e, http.MethodPatch, fmt.Sprintf("/cart/%d/", item.ID),
		`{"quantity":0}`, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(e, http.MethodPatch, fmt.Sprintf("/cart/%d/", item.ID),
		`{"quantity":4}`, token)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCartAddUnknownProduct(t *testing.T) {
	e, _ := newTestServer(t)
	token, _ := registerAndLogin(t, e, "shopper")

	rec := doRequest(e, http.MethodPost, "/cart/", `{"product_id":9999,"quantity":1}`, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOrderFlow(t *testing.T) {
	e, db := newTestServer(t)

	token, _ := registerAndLogin(t, e, "buyer")
	chair := seedProduct(t, db, "ChairX", "10.00")
	lamp := seedProduct(t, db, "LampY", "5.00")

	rec := doRequest(e, http.MethodPost, "/cart/",
		fmt.Sprintf(`{"product_id":%d,"quantity":2}`, chair.ID), token)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = doRequest(e, http.MethodPost, "/cart/",
		fmt.Sprintf(`{"product_id":%d,"quantity":1}`, lamp.ID), token)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Missing address is rejected before touching the cart.
	rec = doRequest(e, http.MethodPost, "/orders/", `{}`, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(e, http.MethodPost, "/orders/",
		`{"address":"12 Example Street"}`, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var order domain.Order
	require.NoError(t, db.First(&order).Error)
	assert.True(t, order.Total.Equal(decimal.RequireFromString("25.00")), "got total %s", order.Total)
	assert.Equal(t, "cod", order.PaymentMethod)

	// The cart is now empty, so a second placement fails.
	rec = doRequest(e, http.MethodPost, "/orders/",
		`{"address":"12 Example Street"}`, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(e, http.MethodGet, "/cart/", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestOrderOwnershipIsolation(t *testing.T) {
	e, db := newTestServer(t)

	aliceToken, _ := registerAndLogin(t, e, "alice")
	bobToken, _ := registerAndLogin(t, e, "bob")
	staffToken := loginStaff(t, e, db, "keeper")
	product := seedProduct(t, db, "Table", "60.00")

	rec := doRequest(e, http.MethodPost, "/cart/",
		fmt.Sprintf(`{"product_id":%d,"quantity":1}`, product.ID), aliceToken)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(e, http.MethodPost, "/orders/", `{"address":"alice's place"}`, aliceToken)
	require.Equal(t, http.StatusCreated, rec.Code)

	var order domain.Order
	require.NoError(t, db.First(&order).Error)

	// Bob gets a 404, never a 403, so order ids do not leak.
	rec = doRequest(e, http.MethodGet, fmt.Sprintf("/orders/%d/", order.ID), "", bobToken)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Staff can inspect any order.
	rec = doRequest(e, http.MethodGet, fmt.Sprintf("/orders/%d/", order.ID), "", staffToken)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUserAdminSurfaceIsStaffOnly(t *testing.T) {
	e, db := newTestServer(t)

	userToken, _ := registerAndLogin(t, e, "plainuser")
	staffToken := loginStaff(t, e, db, "keeper")

	rec := doRequest(e, http.MethodGet, "/users/", "", userToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(e, http.MethodGet, "/users/", "", staffToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret123")
}

func TestProtectedRoutesRejectRefreshToken(t *testing.T) {
	e, _ := newTestServer(t)

	_, refresh := registerAndLogin(t, e, "sneaky")

	// A refresh token is not an access token.
	rec := doRequest(e, http.MethodGet, "/cart/", "", refresh)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
