package profiles_test

import (
	"net/http"
	"testing"

	uierrors "github.com/dalemusser/orphanagecare/internal/app/features/errors"
	"github.com/dalemusser/orphanagecare/internal/app/features/profiles"
	"github.com/dalemusser/orphanagecare/internal/app/system/metrics"
	"github.com/dalemusser/orphanagecare/internal/domain/models"
	"github.com/dalemusser/orphanagecare/internal/testutil"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type env struct {
	router   chi.Router
	fixtures *testutil.Fixtures
}

func newEnv(t *testing.T) env {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	h := profiles.NewHandler(db, uierrors.NewErrorLogger(logger), metrics.New(), logger)

	r := chi.NewRouter()
	r.Group(profiles.Routes(h))
	return env{router: r, fixtures: testutil.NewFixtures(t, db)}
}

func (e env) get(t *testing.T, target string) *testutil.ResponseRecorder {
	t.Helper()
	rec := testutil.NewRecorder()
	e.router.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, target))
	return rec
}

func (e env) post(t *testing.T, target string, body any) *testutil.ResponseRecorder {
	t.Helper()
	rec := testutil.NewRecorder()
	e.router.ServeHTTP(rec, testutil.NewJSONRequest(t, http.MethodPost, target, body))
	return rec
}

func profileBody(port string) map[string]any {
	return map[string]any{
		"orphanageName": "Hope House",
		"principalName": "Mary Jones",
		"city":          "Hyderabad",
		"state":         "Telangana",
		"address":       "12 Lake Road",
		"numChildren":   40,
		"needs":         "Blankets",
		"latitude":      "17.3850",
		"longitude":     "78.4867",
		"portNumber":    port,
	}
}

func TestAddThenLookup(t *testing.T) {
	e := newEnv(t)

	rec := e.get(t, "/check-port-number/5001")
	rec.AssertStatus(t, http.StatusOK)
	assert.JSONEq(t, `{"isUnique":true}`, rec.Body.String())

	rec = e.post(t, "/add-orphanage", profileBody("5001"))
	rec.AssertStatus(t, http.StatusCreated)
	rec.AssertMessage(t, "Orphanage details added successfully!")

	rec = e.get(t, "/check-port-number/5001")
	rec.AssertStatus(t, http.StatusOK)
	assert.JSONEq(t, `{"isUnique":false}`, rec.Body.String())

	rec = e.get(t, "/get-orphanage-by-port/5001")
	rec.AssertStatus(t, http.StatusOK)
	var got models.OrphanageProfile
	rec.DecodeJSON(t, &got)
	assert.False(t, got.ID.IsZero())
	assert.Equal(t, models.Text("Hope House"), got.OrphanageName)
	assert.Equal(t, models.Text("17.3850"), got.Latitude)
	require.NotNil(t, got.NumChildren)
	assert.Equal(t, models.Headcount(40), *got.NumChildren)

	rec = e.get(t, "/orphanage-details/"+got.ID.Hex())
	rec.AssertStatus(t, http.StatusOK)
	var byID models.OrphanageProfile
	rec.DecodeJSON(t, &byID)
	assert.Equal(t, got, byID)
}

func TestHandleAdd_NumChildrenAsString(t *testing.T) {
	e := newEnv(t)

	body := profileBody("5001")
	body["numChildren"] = "12"
	rec := e.post(t, "/add-orphanage", body)
	rec.AssertStatus(t, http.StatusCreated)
}

func TestHandleAdd_NumericTextFields(t *testing.T) {
	e := newEnv(t)

	body := profileBody("")
	body["latitude"] = 17.38
	body["longitude"] = 78.4867
	body["portNumber"] = 5001
	rec := e.post(t, "/add-orphanage", body)
	rec.AssertStatus(t, http.StatusCreated)

	rec = e.get(t, "/get-orphanage-by-port/5001")
	rec.AssertStatus(t, http.StatusOK)
	assert.Contains(t, rec.Body.String(), `"latitude":"17.38"`)
	assert.Contains(t, rec.Body.String(), `"portNumber":"5001"`)
	var got models.OrphanageProfile
	rec.DecodeJSON(t, &got)
	assert.Equal(t, models.Text("78.4867"), got.Longitude)
}

func TestHandleAdd_MissingField(t *testing.T) {
	e := newEnv(t)

	body := profileBody("5001")
	delete(body, "latitude")
	rec := e.post(t, "/add-orphanage", body)
	rec.AssertStatus(t, http.StatusInternalServerError)
	rec.AssertMessage(t, "Error adding orphanage details: orphanagedetails validation failed: missing required fields: latitude")

	ctx, cancel := testutil.TestContext()
	defer cancel()
	assert.Equal(t, int64(0), e.fixtures.Count(ctx, "orphanagedetails"))
}

func TestHandleAdd_DuplicatePort(t *testing.T) {
	e := newEnv(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	e.fixtures.CreateProfile(ctx, "5001")

	rec := e.post(t, "/add-orphanage", profileBody("5001"))
	rec.AssertStatus(t, http.StatusInternalServerError)
	rec.AssertContains(t, "Error adding orphanage details: ")
	assert.Equal(t, int64(1), e.fixtures.Count(ctx, "orphanagedetails"))
}

func TestHandleAdd_MalformedBody(t *testing.T) {
	e := newEnv(t)

	rec := e.post(t, "/add-orphanage", `{"orphanageName":`)
	rec.AssertStatus(t, http.StatusInternalServerError)
	rec.AssertContains(t, "Error adding orphanage details: invalid JSON body")
}

func TestHandleList(t *testing.T) {
	e := newEnv(t)

	rec := e.get(t, "/get-orphanages")
	rec.AssertStatus(t, http.StatusOK)
	assert.JSONEq(t, `[]`, rec.Body.String())

	ctx, cancel := testutil.TestContext()
	defer cancel()
	e.fixtures.CreateProfile(ctx, "5001")
	e.fixtures.CreateProfile(ctx, "5002")

	rec = e.get(t, "/get-orphanages")
	rec.AssertStatus(t, http.StatusOK)

	var list []map[string]any
	rec.DecodeJSON(t, &list)
	require.Len(t, list, 2)
	for _, item := range list {
		assert.Contains(t, item, "_id")
		assert.Contains(t, item, "orphanageName")
		assert.Contains(t, item, "portNumber")
		// Coordinates are not part of the summary.
		assert.Empty(t, item["latitude"])
		assert.Empty(t, item["city"])
	}
}

func TestHandleDetails_Errors(t *testing.T) {
	e := newEnv(t)

	rec := e.get(t, "/orphanage-details/"+primitive.NewObjectID().Hex())
	rec.AssertStatus(t, http.StatusNotFound)
	rec.AssertMessage(t, "Orphanage not found")

	rec = e.get(t, "/orphanage-details/not-an-id")
	rec.AssertStatus(t, http.StatusInternalServerError)
	rec.AssertMessage(t, "Error fetching orphanage details")
}

func TestHandleByPortNumber_NotFound(t *testing.T) {
	e := newEnv(t)

	rec := e.get(t, "/get-orphanage-by-port/9999")
	rec.AssertStatus(t, http.StatusNotFound)
	rec.AssertMessage(t, "Orphanage not found")
}

func TestHandleUpdate(t *testing.T) {
	e := newEnv(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	e.fixtures.CreateProfile(ctx, "5001")

	rec := e.post(t, "/update-orphanage/5001", map[string]any{
		"needs":       "Shoes",
		"numChildren": "45",
		"portNumber":  "7001",
	})
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertMessage(t, "Orphanage updated successfully")

	rec = e.get(t, "/get-orphanage-by-port/5001")
	rec.AssertStatus(t, http.StatusOK)
	var got models.OrphanageProfile
	rec.DecodeJSON(t, &got)
	assert.Equal(t, models.Text("Shoes"), got.Needs)
	require.NotNil(t, got.NumChildren)
	assert.Equal(t, models.Headcount(45), *got.NumChildren)
	assert.Equal(t, models.Text("Hope House"), got.OrphanageName)

	e.get(t, "/get-orphanage-by-port/7001").AssertStatus(t, http.StatusNotFound)
}

func TestHandleUpdate_NumericTextFields(t *testing.T) {
	e := newEnv(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	e.fixtures.CreateProfile(ctx, "5001")

	rec := e.post(t, "/update-orphanage/5001", `{"latitude":18.52,"longitude":73.85,"portNumber":7001}`)
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertMessage(t, "Orphanage updated successfully")

	rec = e.get(t, "/get-orphanage-by-port/5001")
	rec.AssertStatus(t, http.StatusOK)
	var got models.OrphanageProfile
	rec.DecodeJSON(t, &got)
	assert.Equal(t, models.Text("18.52"), got.Latitude)
	assert.Equal(t, models.Text("73.85"), got.Longitude)
}

func TestHandleUpdate_NotFound(t *testing.T) {
	e := newEnv(t)

	rec := e.post(t, "/update-orphanage/9999", map[string]any{"needs": "Shoes"})
	rec.AssertStatus(t, http.StatusNotFound)
	rec.AssertMessage(t, "Orphanage not found")

	ctx, cancel := testutil.TestContext()
	defer cancel()
	assert.Equal(t, int64(0), e.fixtures.Count(ctx, "orphanagedetails"))
}

func TestHandleUpdate_MalformedBody(t *testing.T) {
	e := newEnv(t)

	rec := e.post(t, "/update-orphanage/5001", `{`)
	rec.AssertStatus(t, http.StatusInternalServerError)
	rec.AssertMessage(t, "Failed to update orphanage")
}
