package handler_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"clausesync/internal/domain"
	"clausesync/internal/handler"
	"clausesync/internal/middleware"
	"clausesync/internal/service"
	"clausesync/mocks"
)

func setupReviewRouter(svc service.ReviewService, userID uuid.UUID) *gin.Engine {
	return setupReviewRouterAs(svc, userID, domain.RoleMember)
}

func setupReviewRouterAs(svc service.ReviewService, userID uuid.UUID, role domain.UserRole) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextKeyUserID, userID)
		c.Set(middleware.ContextKeyRole, string(role))
		c.Next()
	})

	h := handler.NewReviewHandler(svc)
	r.POST("/api/v1/reviews", h.Submit)
	r.GET("/api/v1/reviews", h.List)
	r.GET("/api/v1/reviews/:id", h.GetByID)
	r.GET("/api/v1/reviews/:id/contract", h.DownloadContract)
	r.GET("/api/v1/reviews/:id/export", h.Export)
	r.DELETE("/api/v1/reviews/:id", middleware.RequireRole(domain.RoleAdmin), h.Delete)
	return r
}

func multipartUpload(t *testing.T, fieldName, fileName string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile(fieldName, fileName)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestReviewHandler_Submit(t *testing.T) {
	userID := uuid.New()
	svc := new(mocks.MockReviewService)
	svc.On("Submit", mock.Anything, mock.MatchedBy(func(input service.SubmitReviewInput) bool {
		return input.FileName == "contract.txt" &&
			string(input.Data) == "contract body" &&
			input.RequestedBy == userID
	})).Return(&domain.Review{
		ID:           uuid.New(),
		ContractName: "contract.txt",
		Status:       domain.ReviewStatusCompleted,
		RiskLevel:    domain.RiskLevelLow,
	}, nil)

	r := setupReviewRouter(svc, userID)
	body, contentType := multipartUpload(t, "file", "contract.txt", []byte("contract body"))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reviews", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	svc.AssertExpectations(t)
}

func TestReviewHandler_Submit_MissingFile(t *testing.T) {
	svc := new(mocks.MockReviewService)
	r := setupReviewRouter(svc, uuid.New())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reviews", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Submit")
}

func TestReviewHandler_Submit_FileTooLarge(t *testing.T) {
	svc := new(mocks.MockReviewService)
	svc.On("Submit", mock.Anything, mock.Anything).Return(nil, domain.ErrFileTooLarge)

	r := setupReviewRouter(svc, uuid.New())
	body, contentType := multipartUpload(t, "file", "big.txt", []byte("too big"))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reviews", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "FILE_TOO_LARGE", resp.Error.Code)
}

func TestReviewHandler_Submit_LLMNotConfigured(t *testing.T) {
	svc := new(mocks.MockReviewService)
	svc.On("Submit", mock.Anything, mock.Anything).Return(nil, domain.ErrMissingAPIKey)

	r := setupReviewRouter(svc, uuid.New())
	body, contentType := multipartUpload(t, "file", "contract.txt", []byte("text"))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reviews", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "LLM_NOT_CONFIGURED", resp.Error.Code)
}

func TestReviewHandler_List(t *testing.T) {
	svc := new(mocks.MockReviewService)
	svc.On("List", mock.Anything, 2, 10).Return(&service.ReviewListResult{
		Reviews: []domain.Review{{ID: uuid.New()}},
		Total:   11,
		Page:    2,
		Limit:   10,
	}, nil)

	r := setupReviewRouter(svc, uuid.New())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/reviews?page=2&limit=10", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 11, resp.Meta.Total)
	assert.Equal(t, 2, resp.Meta.Page)
}

func TestReviewHandler_GetByID(t *testing.T) {
	reviewID := uuid.New()
	rev := &domain.Review{
		ID:           reviewID,
		ContractName: "contract.pdf",
		Status:       domain.ReviewStatusCompleted,
		S3Bucket:     "bucket",
		S3Key:        "contracts/key",
	}
	svc := new(mocks.MockReviewService)
	svc.On("GetByID", mock.Anything, reviewID).Return(rev, nil)
	svc.On("GetContractURL", mock.Anything, rev).Return("https://s3/presigned", nil)

	r := setupReviewRouter(svc, uuid.New())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/reviews/"+reviewID.String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "https://s3/presigned", data["contract_url"])
	review := data["review"].(map[string]interface{})
	assert.Equal(t, "contract.pdf", review["contract_name"])
}

func TestReviewHandler_GetByID_InvalidID(t *testing.T) {
	svc := new(mocks.MockReviewService)
	r := setupReviewRouter(svc, uuid.New())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reviews/not-a-uuid", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReviewHandler_GetByID_NotFound(t *testing.T) {
	reviewID := uuid.New()
	svc := new(mocks.MockReviewService)
	svc.On("GetByID", mock.Anything, reviewID).Return(nil, domain.ErrNotFound)

	r := setupReviewRouter(svc, uuid.New())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/reviews/"+reviewID.String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReviewHandler_DownloadContract(t *testing.T) {
	reviewID := uuid.New()
	svc := new(mocks.MockReviewService)
	svc.On("DownloadContract", mock.Anything, reviewID).Return(&service.ContractFile{
		Name:        "contract.pdf",
		ContentType: "application/pdf",
		Data:        []byte("pdf-bytes"),
	}, nil)

	r := setupReviewRouter(svc, uuid.New())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/reviews/"+reviewID.String()+"/contract", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "contract.pdf")
	assert.Equal(t, "pdf-bytes", w.Body.String())
}

func TestReviewHandler_DownloadContract_NotArchived(t *testing.T) {
	reviewID := uuid.New()
	svc := new(mocks.MockReviewService)
	svc.On("DownloadContract", mock.Anything, reviewID).Return(nil, domain.ErrNotFound)

	r := setupReviewRouter(svc, uuid.New())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/reviews/"+reviewID.String()+"/contract", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReviewHandler_Delete_AsAdmin(t *testing.T) {
	reviewID := uuid.New()
	svc := new(mocks.MockReviewService)
	svc.On("Delete", mock.Anything, reviewID).Return(nil)

	r := setupReviewRouterAs(svc, uuid.New(), domain.RoleAdmin)
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/reviews/"+reviewID.String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestReviewHandler_Delete_MemberForbidden(t *testing.T) {
	svc := new(mocks.MockReviewService)

	r := setupReviewRouter(svc, uuid.New())
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/reviews/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	svc.AssertNotCalled(t, "Delete")
}

func TestReviewHandler_Export(t *testing.T) {
	reviewID := uuid.New()
	svc := new(mocks.MockReviewService)
	svc.On("ExportXLSX", mock.Anything, reviewID).Return([]byte("xlsx-bytes"), "msa_review.xlsx", nil)

	r := setupReviewRouter(svc, uuid.New())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/reviews/"+reviewID.String()+"/export", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "msa_review.xlsx")
	assert.Equal(t, "xlsx-bytes", w.Body.String())
}
