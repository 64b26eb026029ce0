package catalog

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"inmobiliaria-backend/internal/database"
	"inmobiliaria-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCatalogTest(t *testing.T) (*fiber.App, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	h := &Handlers{Service: &Service{DB: db}}
	app := fiber.New()

	g := app.Group("/api/v1/property-types")
	g.Get("/", h.ListPropertyTypes)
	g.Get("/:id", h.GetPropertyType)
	g.Post("/", h.CreatePropertyType)
	g.Put("/:id", h.UpdatePropertyType)
	g.Delete("/:id", h.DeletePropertyType)

	f := app.Group("/api/v1/features")
	f.Get("/", h.ListFeatures)
	f.Post("/", h.CreateFeature)
	f.Delete("/:id", h.DeleteFeature)

	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, path string, payload interface{}) int {
	t.Helper()
	var body []byte
	if payload != nil {
		body, _ = json.Marshal(payload)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestCreatePropertyType_Created(t *testing.T) {
	app, db := setupCatalogTest(t)
	status := doJSON(t, app, "POST", "/api/v1/property-types/", map[string]string{"name": "apartment", "description": "Flats"})
	assert.Equal(t, fiber.StatusCreated, status)

	var count int64
	require.NoError(t, db.Model(&domain.PropertyType{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreatePropertyType_DuplicateIs409(t *testing.T) {
	app, _ := setupCatalogTest(t)
	require.Equal(t, fiber.StatusCreated, doJSON(t, app, "POST", "/api/v1/property-types/", map[string]string{"name": "house"}))
	assert.Equal(t, fiber.StatusConflict, doJSON(t, app, "POST", "/api/v1/property-types/", map[string]string{"name": "house"}))
}

func TestCreatePropertyType_MissingNameIs400(t *testing.T) {
	app, _ := setupCatalogTest(t)
	assert.Equal(t, fiber.StatusBadRequest, doJSON(t, app, "POST", "/api/v1/property-types/", map[string]string{"description": "no name"}))
}

func TestGetPropertyType_UnknownIs404(t *testing.T) {
	app, _ := setupCatalogTest(t)
	assert.Equal(t, fiber.StatusNotFound, doJSON(t, app, "GET", "/api/v1/property-types/42", nil))
}

func TestUpdatePropertyType_RenameCollisionIs409(t *testing.T) {
	app, db := setupCatalogTest(t)
	require.NoError(t, db.Create(&domain.PropertyType{Name: "house"}).Error)
	require.NoError(t, db.Create(&domain.PropertyType{Name: "villa"}).Error)

	assert.Equal(t, fiber.StatusConflict, doJSON(t, app, "PUT", "/api/v1/property-types/2", map[string]string{"name": "house"}))
	assert.Equal(t, fiber.StatusOK, doJSON(t, app, "PUT", "/api/v1/property-types/2", map[string]string{"name": "chalet"}))
}

func TestDeletePropertyType_NoContent(t *testing.T) {
	app, db := setupCatalogTest(t)
	require.NoError(t, db.Create(&domain.PropertyType{Name: "house"}).Error)
	assert.Equal(t, fiber.StatusNoContent, doJSON(t, app, "DELETE", "/api/v1/property-types/1", nil))

	var count int64
	require.NoError(t, db.Model(&domain.PropertyType{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

// A property type referenced by a property cannot be deleted.
func TestDeletePropertyType_InUseIs409(t *testing.T) {
	app, db := setupCatalogTest(t)
	require.NoError(t, db.Create(&domain.PropertyType{Name: "house"}).Error)
	require.NoError(t, db.Create(&domain.SalesType{Name: "sale"}).Error)
	require.NoError(t, db.Create(&domain.Property{
		Code:           "900001",
		Description:    "Listing",
		Address:        "Somewhere",
		Price:          100000,
		AgentID:        uuid.New().String(),
		PropertyTypeID: 1,
		SalesTypeID:    1,
	}).Error)

	assert.Equal(t, fiber.StatusConflict, doJSON(t, app, "DELETE", "/api/v1/property-types/1", nil))
}

func TestDeleteFeature_DetachesFromProperties(t *testing.T) {
	app, db := setupCatalogTest(t)
	require.NoError(t, db.Create(&domain.PropertyType{Name: "house"}).Error)
	require.NoError(t, db.Create(&domain.SalesType{Name: "sale"}).Error)
	require.NoError(t, db.Create(&domain.Feature{Name: "pool"}).Error)
	require.NoError(t, db.Create(&domain.Property{
		Code:           "900002",
		Description:    "Listing",
		Address:        "Somewhere",
		Price:          100000,
		AgentID:        uuid.New().String(),
		PropertyTypeID: 1,
		SalesTypeID:    1,
		Features:       []domain.Feature{{FeatureID: 1, Name: "pool"}},
	}).Error)

	assert.Equal(t, fiber.StatusNoContent, doJSON(t, app, "DELETE", "/api/v1/features/1", nil))

	var prop domain.Property
	require.NoError(t, db.Preload("Features").First(&prop).Error)
	assert.Empty(t, prop.Features)
}
