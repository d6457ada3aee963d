package mcp

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appSummary "github.com/summarydesk/backend/internal/application/summary"
	domainSummary "github.com/summarydesk/backend/internal/domain/summary"
	"github.com/summarydesk/backend/internal/infrastructure/config"
	"github.com/summarydesk/backend/internal/infrastructure/storage"
)

// setupSession 创建 MCP 服务器并通过内存传输连接客户端
func setupSession(t *testing.T) (*mcp.ClientSession, domainSummary.Repository) {
	t.Helper()

	db, cleanup, err := storage.ProvideDB(&config.DatabaseConfig{URL: filepath.Join(t.TempDir(), "mcp.db")})
	require.NoError(t, err)
	t.Cleanup(cleanup)

	repo := storage.NewSummaryRepository(db)
	domainSvc := domainSummary.NewService()
	srv := NewServer(
		appSummary.NewQueryService(repo, domainSvc),
		appSummary.NewDeletionService(repo, domainSvc, nil),
	)
	require.NotNil(t, srv.GetHandler())

	ctx := context.Background()
	clientTransport, serverTransport := mcp.NewInMemoryTransports()
	serverSession, err := srv.server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { serverSession.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { session.Close() })

	return session, repo
}

func seed(t *testing.T, repo domainSummary.Repository) (parentID int64) {
	t.Helper()
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	parentID, err := repo.InsertSummary(ctx, &domainSummary.Record{
		SummaryType: domainSummary.TypeConversation, SummaryID: "C1", DateCreated: base,
	})
	require.NoError(t, err)
	_, err = repo.InsertSummary(ctx, &domainSummary.Record{
		SummaryType: domainSummary.TypeAgent, SummaryID: "A1", ConversationID: "C1", DateCreated: base.Add(time.Minute),
	})
	require.NoError(t, err)
	return parentID
}

func structured[T any](t *testing.T, res *mcp.CallToolResult) T {
	t.Helper()
	require.False(t, res.IsError, "tool returned error: %+v", res.Content)
	raw, err := json.Marshal(res.StructuredContent)
	require.NoError(t, err)
	var out T
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestMCP_ListTools(t *testing.T) {
	session, _ := setupSession(t)

	res, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)

	var names []string
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{"get_dashboard", "list_summaries", "get_summary", "delete_summary"}, names)
}

func TestMCP_DashboardAndDelete(t *testing.T) {
	session, repo := setupSession(t)
	parentID := seed(t, repo)
	ctx := context.Background()

	res, err := session.CallTool(ctx, &mcp.CallToolParams{Name: "get_dashboard", Arguments: map[string]any{}})
	require.NoError(t, err)
	dash := structured[appSummary.DashboardDTO](t, res)
	require.Len(t, dash.Groups, 1)
	assert.Equal(t, "C1", dash.Groups[0].Parent.SummaryID)
	assert.Len(t, dash.Groups[0].Children, 1)

	res, err = session.CallTool(ctx, &mcp.CallToolParams{Name: "get_summary", Arguments: map[string]any{"id": parentID}})
	require.NoError(t, err)
	detail := structured[GetSummaryOutput](t, res)
	assert.True(t, detail.Found)
	assert.True(t, detail.Detail.IsParent)

	res, err = session.CallTool(ctx, &mcp.CallToolParams{Name: "delete_summary", Arguments: map[string]any{"ids": []int64{parentID, 999}}})
	require.NoError(t, err)
	deleted := structured[appSummary.BatchDeleteResult](t, res)
	assert.Equal(t, 1, deleted.Deleted)
	assert.Equal(t, int64(2), deleted.Records)
	require.Len(t, deleted.Failed, 1)

	res, err = session.CallTool(ctx, &mcp.CallToolParams{Name: "get_summary", Arguments: map[string]any{"id": parentID}})
	require.NoError(t, err)
	assert.False(t, structured[GetSummaryOutput](t, res).Found)
}
