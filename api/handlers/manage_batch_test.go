package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/parkkaro/park-karo-api/databases"
	"github.com/parkkaro/park-karo-api/databases/mocks"
	"github.com/parkkaro/park-karo-api/manage"
	"github.com/parkkaro/park-karo-api/models"
)

func newBatchManage(t *testing.T, db databases.ProfileDatabase) Manage {
	t.Helper()
	svc := manage.NewService(db)
	pool := manage.NewPool(manage.DefaultWorkers, manage.DefaultQueueSize)
	t.Cleanup(func() { pool.Shutdown(context.Background()) })
	return Manage{Service: svc, Batch: manage.NewCoordinator(svc, pool)}
}

func TestGetManyHandlerOmitsMissing(t *testing.T) {
	var db mocks.ProfileDatabase
	db.On("Get", mock.Anything, "u1").Return(profileDoc("u1"), nil)
	db.On("Get", mock.Anything, "ghost").Return(nil, nil)

	req := httptest.NewRequest("POST", "/api/v1/manage/batch/users", strings.NewReader(`["u1", "ghost"]`))
	w := httptest.NewRecorder()

	newBatchManage(t, &db).GetManyHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var profiles map[string]models.Profile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profiles))
	assert.Len(t, profiles, 1)
	assert.Contains(t, profiles, "u1")
}

func TestGetManyHandlerBadBody(t *testing.T) {
	var db mocks.ProfileDatabase

	req := httptest.NewRequest("POST", "/api/v1/manage/batch/users", strings.NewReader("{not json"))
	w := httptest.NewRecorder()

	newBatchManage(t, &db).GetManyHandler(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBatchAddVehiclesHandler(t *testing.T) {
	var db mocks.ProfileDatabase
	db.On("Get", mock.Anything, mock.Anything).Return(nil, nil)
	db.On("Insert", mock.Anything, mock.Anything).Return(nil)

	body := `{"u1": [{"vehicle_id": "v1"}, {"nickname": "no id"}], "u2": [{"vehicle_id": "v2"}]}`
	req := httptest.NewRequest("POST", "/api/v1/manage/batch/vehicles", strings.NewReader(body))
	w := httptest.NewRecorder()

	newBatchManage(t, &db).BatchAddVehiclesHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var added map[string][]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &added))
	assert.Equal(t, []string{"v1"}, added["u1"])
	assert.Equal(t, []string{"v2"}, added["u2"])
}

func TestBatchUpdateVehiclesHandler(t *testing.T) {
	var db mocks.ProfileDatabase
	db.On("Get", mock.Anything, "u1").Return(profileDoc("u1"), nil)
	db.On("SetFieldsVersioned", mock.Anything, "u1", mock.Anything, mock.Anything).Return(nil)

	body := `{"v1": {"vehicle_id": "v1", "nickname": "Car2"}, "v9": {"vehicle_id": "v9"}}`
	req := httptest.NewRequest("PUT", "/api/v1/manage/u1/batch/vehicles", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"user_id": "u1"})
	w := httptest.NewRecorder()

	newBatchManage(t, &db).BatchUpdateVehiclesHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	// v9 is not in the stored profile, so only v1 lands
	var updated []string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, []string{"v1"}, updated)
}

func TestGenerateReportHandler(t *testing.T) {
	var db mocks.ProfileDatabase
	db.On("Get", mock.Anything, "u1").Return(profileDoc("u1"), nil)
	db.On("Get", mock.Anything, "ghost").Return(nil, nil)

	req := httptest.NewRequest("POST", "/api/v1/manage/batch/report", strings.NewReader(`["u1", "ghost"]`))
	w := httptest.NewRecorder()

	newBatchManage(t, &db).GenerateReportHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var report models.ProfileReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, 2, report.TotalUsers)
	assert.Equal(t, 1, report.SuccessfulUsers)
	assert.Equal(t, 1, report.FailedUsers)
	assert.Equal(t, 1, report.TotalVehicles)
	assert.NotEmpty(t, report.GeneratedAt)
}

func TestBatchHandlerSaturatedPool(t *testing.T) {
	var db mocks.ProfileDatabase
	db.On("Get", mock.Anything, mock.Anything).Return(nil, nil)

	svc := manage.NewService(&db)
	pool := manage.NewPool(1, 1)
	defer pool.Shutdown(context.Background())

	// park the single worker so the queue can only hold one more task
	release := make(chan struct{})
	running := make(chan struct{})
	_, err := pool.Submit(context.Background(), func(ctx context.Context) (interface{}, error) {
		close(running)
		<-release
		return nil, nil
	})
	require.NoError(t, err)
	<-running
	defer close(release)

	mg := Manage{Service: svc, Batch: manage.NewCoordinator(svc, pool)}

	req := httptest.NewRequest("POST", "/api/v1/manage/batch/users", strings.NewReader(`["u1", "u2"]`))
	w := httptest.NewRecorder()

	mg.GetManyHandler(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
