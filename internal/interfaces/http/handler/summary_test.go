package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appSummary "github.com/summarydesk/backend/internal/application/summary"
	domainSummary "github.com/summarydesk/backend/internal/domain/summary"
	"github.com/summarydesk/backend/internal/infrastructure/config"
	"github.com/summarydesk/backend/internal/infrastructure/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setupSummaryRouter 创建基于临时 SQLite 的测试路由
func setupSummaryRouter(t *testing.T) *gin.Engine {
	t.Helper()
	router, _ := setupSummaryRouterWithRepo(t)
	return router
}

// setupSummaryRouterWithRepo 同 setupSummaryRouter，额外返回仓储以便直接写入存量数据
func setupSummaryRouterWithRepo(t *testing.T) (*gin.Engine, domainSummary.Repository) {
	t.Helper()

	db, cleanup, err := storage.ProvideDB(&config.DatabaseConfig{URL: filepath.Join(t.TempDir(), "handler.db")})
	require.NoError(t, err)
	t.Cleanup(cleanup)

	repo := storage.NewSummaryRepository(db)
	domainSvc := domainSummary.NewService()
	handler := NewSummaryHandler(
		appSummary.NewIngestService(repo, domainSvc, nil, nil),
		appSummary.NewQueryService(repo, domainSvc),
		appSummary.NewDeletionService(repo, domainSvc, nil),
	)

	router := gin.New()
	api := router.Group("/api/v1")
	{
		api.POST("/conversations", handler.Ingest)
		api.GET("/dashboard", handler.Dashboard)
		api.GET("/summaries", handler.List)
		api.GET("/summaries/:id", handler.Detail)
		api.DELETE("/summaries/:id", handler.Delete)
		api.POST("/summaries/delete", handler.DeleteBatch)
	}
	return router, repo
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

type envelope[T any] struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

const parentChildBatch = `{"entities":[
	{"summaryType":"Conversation","summaryId":"C1","mediaType":"call","language":"es","sourceId":"s1","summary":"llamada completa","generated":true,"dateCreated":"2024-01-01T10:00:00Z"},
	{"summaryType":"Agent","summaryId":"A1","conversationId":"C1","agentId":"ag-1","mediaType":"call","language":"es","sourceId":"s1","summary":"parte del agente","generated":true,"dateCreated":"2024-01-01T10:05:00Z",
	 "insights":[{"type":"reason","title":"Factura","description":"cargo duplicado"}]}
]}`

// TestSummaryHandler_ParentChildLifecycle 写入父子记录、查看分组、删除父记录
func TestSummaryHandler_ParentChildLifecycle(t *testing.T) {
	router := setupSummaryRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/conversations", parentChildBatch)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	ingest := decode[appSummary.IngestResult](t, w)
	assert.True(t, ingest.Success)
	assert.Equal(t, 2, ingest.Inserted)
	require.Len(t, ingest.Conversations, 2)
	parentID := ingest.Conversations[0].ID

	w = doJSON(t, router, http.MethodGet, "/api/v1/dashboard", "")
	require.Equal(t, http.StatusOK, w.Code)
	dash := decode[envelope[appSummary.DashboardDTO]](t, w)
	assert.Equal(t, 0, dash.Code)
	require.Len(t, dash.Data.Groups, 1)
	assert.Equal(t, "C1", dash.Data.Groups[0].Parent.SummaryID)
	require.Len(t, dash.Data.Groups[0].Children, 1)
	assert.Equal(t, "A1", dash.Data.Groups[0].Children[0].SummaryID)
	assert.Equal(t, 1, dash.Data.Groups[0].Children[0].InsightCount)
	assert.Empty(t, dash.Data.SharedGroups)
	assert.Empty(t, dash.Data.Standalones)

	w = doJSON(t, router, http.MethodGet, "/api/v1/summaries/"+itoa(parentID), "")
	require.Equal(t, http.StatusOK, w.Code)
	detail := decode[envelope[appSummary.SummaryDetailDTO]](t, w)
	assert.True(t, detail.Data.IsParent)
	assert.Equal(t, 1, detail.Data.ChildCount)

	w = doJSON(t, router, http.MethodDelete, "/api/v1/summaries/"+itoa(parentID), "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"success":true,"deleted":2}`, w.Body.String())

	w = doJSON(t, router, http.MethodGet, "/api/v1/dashboard", "")
	dash = decode[envelope[appSummary.DashboardDTO]](t, w)
	assert.Zero(t, dash.Data.Counts.Total, "父记录删除后子记录也应被删除")

	// 再次删除返回 not found
	w = doJSON(t, router, http.MethodDelete, "/api/v1/summaries/"+itoa(parentID), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	res := decode[map[string]interface{}](t, w)
	assert.Equal(t, false, res["success"])
	assert.Equal(t, domainSummary.ErrNotFound.Error(), res["error"])
}

// TestSummaryHandler_SharedGroup 无会话父记录时形成共享分组
func TestSummaryHandler_SharedGroup(t *testing.T) {
	router := setupSummaryRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/conversations", `{"entities":[
		{"summaryType":"Agent","summaryId":"A1","conversationId":"X","dateCreated":"2024-01-01T10:00:00Z"},
		{"summaryType":"Agent","summaryId":"A2","conversationId":"X","dateCreated":"2024-01-01T10:01:00Z"}
	]}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/dashboard", "")
	dash := decode[envelope[appSummary.DashboardDTO]](t, w)
	assert.Empty(t, dash.Data.Groups)
	require.Len(t, dash.Data.SharedGroups, 1)
	assert.Equal(t, "X", dash.Data.SharedGroups[0].ConversationID)
	assert.Len(t, dash.Data.SharedGroups[0].Members, 2)
	assert.Empty(t, dash.Data.Standalones)
}

// TestSummaryHandler_IngestRejectsBatch 校验失败时整批拒绝
func TestSummaryHandler_IngestRejectsBatch(t *testing.T) {
	router := setupSummaryRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/conversations", `{"entities":[
		{"summaryType":"Conversation","summaryId":"C1","dateCreated":"2024-01-01T10:00:00Z"},
		{"summaryType":"Agent","summaryId":"A1","dateCreated":"2024-01-01T10:00:00Z"}
	]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decode[map[string]interface{}](t, w)
	assert.Contains(t, body["error"], "entities[1]")

	w = doJSON(t, router, http.MethodGet, "/api/v1/dashboard", "")
	dash := decode[envelope[appSummary.DashboardDTO]](t, w)
	assert.Zero(t, dash.Data.Counts.Total, "被拒绝的批次不应写入任何记录")
}

// TestSummaryHandler_IngestBadShape 请求体格式错误
func TestSummaryHandler_IngestBadShape(t *testing.T) {
	router := setupSummaryRouter(t)

	for _, body := range []string{`{"items":[]}`, `not json`, `{"entities":{}}`} {
		w := doJSON(t, router, http.MethodPost, "/api/v1/conversations", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		res := decode[map[string]interface{}](t, w)
		assert.Equal(t, appSummary.ErrInvalidRequest.Error(), res["error"])
	}
}

// TestSummaryHandler_DeleteBatch 批量删除逐条处理
func TestSummaryHandler_DeleteBatch(t *testing.T) {
	router := setupSummaryRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/conversations", parentChildBatch)
	require.Equal(t, http.StatusOK, w.Code)
	ingest := decode[appSummary.IngestResult](t, w)

	body := `{"ids":[` + itoa(ingest.Conversations[1].ID) + `,999,` + itoa(ingest.Conversations[0].ID) + `]}`
	w = doJSON(t, router, http.MethodPost, "/api/v1/summaries/delete", body)
	require.Equal(t, http.StatusOK, w.Code)
	res := decode[appSummary.BatchDeleteResult](t, w)
	assert.True(t, res.Success)
	assert.Equal(t, 2, res.Deleted)
	assert.Equal(t, int64(2), res.Records)
	require.Len(t, res.Failed, 1)
	assert.Equal(t, int64(999), res.Failed[0].ID)

	w = doJSON(t, router, http.MethodPost, "/api/v1/summaries/delete", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// TestSummaryHandler_ListAndDetail 列表过滤与详情
func TestSummaryHandler_ListAndDetail(t *testing.T) {
	router := setupSummaryRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/conversations", parentChildBatch)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/summaries?summaryType=Agent", "")
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[envelope[[]appSummary.SummaryDTO]](t, w)
	require.Len(t, list.Data, 1)
	assert.Equal(t, "A1", list.Data[0].SummaryID)

	w = doJSON(t, router, http.MethodGet, "/api/v1/summaries?order=asc", "")
	list = decode[envelope[[]appSummary.SummaryDTO]](t, w)
	require.Len(t, list.Data, 2)
	assert.Equal(t, "C1", list.Data[0].SummaryID)

	w = doJSON(t, router, http.MethodGet, "/api/v1/summaries?summaryType=Robot", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/summaries/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/summaries/12345", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func fetchDashboard(t *testing.T, router *gin.Engine) appSummary.DashboardDTO {
	t.Helper()
	w := doJSON(t, router, http.MethodGet, "/api/v1/dashboard", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decode[envelope[appSummary.DashboardDTO]](t, w).Data
}

// dashboardIDs 收集仪表盘上出现的全部记录 ID
func dashboardIDs(d appSummary.DashboardDTO) map[int64]bool {
	ids := map[int64]bool{}
	for _, g := range d.Groups {
		ids[g.Parent.ID] = true
		for _, c := range g.Children {
			ids[c.ID] = true
		}
	}
	for _, sg := range d.SharedGroups {
		for _, m := range sg.Members {
			ids[m.ID] = true
		}
	}
	for _, r := range d.Standalones {
		ids[r.ID] = true
	}
	return ids
}

// deleteDisplayedParent 删除仪表盘上 summaryId 对应分组的父记录，并断言该分组显示的记录全部消失
func deleteDisplayedParent(t *testing.T, router *gin.Engine, summaryID string) {
	t.Helper()

	var group *appSummary.GroupDTO
	for _, g := range fetchDashboard(t, router).Groups {
		if g.Parent.SummaryID == summaryID {
			group = g
		}
	}
	require.NotNil(t, group, "dashboard has no group for %s", summaryID)

	w := doJSON(t, router, http.MethodGet, "/api/v1/summaries/"+itoa(group.Parent.ID), "")
	require.Equal(t, http.StatusOK, w.Code)
	detail := decode[envelope[appSummary.SummaryDetailDTO]](t, w).Data
	assert.Equal(t, len(group.Children), detail.ChildCount, "删除预览应与仪表盘分组一致")

	w = doJSON(t, router, http.MethodDelete, "/api/v1/summaries/"+itoa(group.Parent.ID), "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	res := decode[map[string]interface{}](t, w)
	assert.EqualValues(t, len(group.Children)+1, res["deleted"])

	remaining := dashboardIDs(fetchDashboard(t, router))
	assert.False(t, remaining[group.Parent.ID])
	for _, c := range group.Children {
		assert.False(t, remaining[c.ID], "child %d (%s) survived its parent", c.ID, c.SummaryID)
	}
}

// TestSummaryHandler_DeleteParentWithDuplicateConversation 同一 summaryId 的会话记录重复写入
func TestSummaryHandler_DeleteParentWithDuplicateConversation(t *testing.T) {
	router := setupSummaryRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/conversations", `{"entities":[
		{"summaryType":"Conversation","summaryId":"C1","dateCreated":"2024-01-01T10:00:00Z"},
		{"summaryType":"Conversation","summaryId":"C1","dateCreated":"2024-01-01T10:01:00Z"},
		{"summaryType":"Agent","summaryId":"A1","conversationId":"C1","dateCreated":"2024-01-01T10:02:00Z"},
		{"summaryType":"Agent","summaryId":"A9","conversationId":"C9","dateCreated":"2024-01-01T10:03:00Z"}
	]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	ingest := decode[appSummary.IngestResult](t, w)

	dash := fetchDashboard(t, router)
	require.Len(t, dash.Groups, 1)
	assert.Equal(t, ingest.Conversations[0].ID, dash.Groups[0].Parent.ID, "最早写入的会话记录为父节点")
	require.Len(t, dash.Groups[0].Children, 2)

	deleteDisplayedParent(t, router, "C1")

	dash = fetchDashboard(t, router)
	assert.Equal(t, 1, dash.Counts.Total)
	require.Len(t, dash.Standalones, 1)
	assert.Equal(t, "A9", dash.Standalones[0].SummaryID)
}

// TestSummaryHandler_DeleteDuplicateConversationShownAsChild 删除显示为子记录的重复会话记录只删除它自己
func TestSummaryHandler_DeleteDuplicateConversationShownAsChild(t *testing.T) {
	router := setupSummaryRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/conversations", `{"entities":[
		{"summaryType":"Conversation","summaryId":"C1","dateCreated":"2024-01-01T10:00:00Z"},
		{"summaryType":"Conversation","summaryId":"C1","dateCreated":"2024-01-01T10:01:00Z"},
		{"summaryType":"Agent","summaryId":"A1","conversationId":"C1","dateCreated":"2024-01-01T10:02:00Z"}
	]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	ingest := decode[appSummary.IngestResult](t, w)
	dupID := ingest.Conversations[1].ID

	w = doJSON(t, router, http.MethodGet, "/api/v1/summaries/"+itoa(dupID), "")
	require.Equal(t, http.StatusOK, w.Code)
	detail := decode[envelope[appSummary.SummaryDetailDTO]](t, w).Data
	assert.False(t, detail.IsParent)
	assert.Zero(t, detail.ChildCount)

	w = doJSON(t, router, http.MethodDelete, "/api/v1/summaries/"+itoa(dupID), "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"success":true,"deleted":1}`, w.Body.String())

	dash := fetchDashboard(t, router)
	require.Len(t, dash.Groups, 1)
	assert.Equal(t, ingest.Conversations[0].ID, dash.Groups[0].Parent.ID)
	require.Len(t, dash.Groups[0].Children, 1)
	assert.Equal(t, "A1", dash.Groups[0].Children[0].SummaryID)
}

// TestSummaryHandler_ConversationWithForeignKey 会话记录携带不同的 conversationId
func TestSummaryHandler_ConversationWithForeignKey(t *testing.T) {
	router, repo := setupSummaryRouterWithRepo(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/conversations", `{"entities":[
		{"summaryType":"Conversation","summaryId":"S1","conversationId":"K1","dateCreated":"2024-01-01T10:00:00Z"}
	]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decode[map[string]interface{}](t, w)
	assert.Contains(t, body["error"], domainSummary.ErrConversationKeyMismatch.Error())

	// 存量数据中可能已有这样的记录，分组与级联都只认 summaryId
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	for i, r := range []*domainSummary.Record{
		{SummaryType: domainSummary.TypeConversation, SummaryID: "S1", ConversationID: "K1"},
		{SummaryType: domainSummary.TypeAgent, SummaryID: "A1", ConversationID: "S1"},
		{SummaryType: domainSummary.TypeAgent, SummaryID: "A2", ConversationID: "K1"},
	} {
		r.DateCreated = base.Add(time.Duration(i) * time.Minute)
		_, err := repo.InsertSummary(ctx, r)
		require.NoError(t, err)
	}

	dash := fetchDashboard(t, router)
	require.Len(t, dash.Groups, 1)
	require.Len(t, dash.Groups[0].Children, 1)
	assert.Equal(t, "A1", dash.Groups[0].Children[0].SummaryID)

	deleteDisplayedParent(t, router, "S1")

	dash = fetchDashboard(t, router)
	require.Len(t, dash.Standalones, 1)
	assert.Equal(t, "A2", dash.Standalones[0].SummaryID)
}
