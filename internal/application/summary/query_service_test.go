package summary

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	domain "github.com/summarydesk/backend/internal/domain/summary"
	"github.com/summarydesk/backend/internal/domain/summary/mocks"
)

var base = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func rec(id int64, typ domain.SummaryType, summaryID, convID string, minutes int) *domain.Record {
	return &domain.Record{
		ID:             id,
		SummaryType:    typ,
		SummaryID:      summaryID,
		ConversationID: convID,
		DateCreated:    base.Add(time.Duration(minutes) * time.Minute),
		CreatedAt:      base,
	}
}

func TestDashboard_BuildsPartition(t *testing.T) {
	repo := mocks.NewRepository(t)
	svc := NewQueryService(repo, domain.NewService())

	records := []*domain.Record{
		rec(1, domain.TypeConversation, "C1", "", 0),
		rec(2, domain.TypeAgent, "A1", "C1", 1),
		rec(3, domain.TypeAgent, "A2", "X", 2),
		rec(4, domain.TypeVirtualAgent, "V1", "X", 3),
		rec(5, domain.TypeAgent, "A3", "", 4),
	}
	repo.On("ListSummaries", mock.Anything, domain.ListFilter{Order: domain.OrderAsc}).Return(records, nil)

	out, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	require.Len(t, out.Groups, 1)
	assert.Equal(t, "C1", out.Groups[0].Parent.SummaryID)
	require.Len(t, out.Groups[0].Children, 1)
	assert.Equal(t, "A1", out.Groups[0].Children[0].SummaryID)

	require.Len(t, out.SharedGroups, 1)
	assert.Equal(t, "X", out.SharedGroups[0].ConversationID)
	assert.Len(t, out.SharedGroups[0].Members, 2)

	require.Len(t, out.Standalones, 1)
	assert.Equal(t, "A3", out.Standalones[0].SummaryID)

	assert.Equal(t, CountsDTO{Total: 5, Agent: 3, VirtualAgent: 1, Conversation: 1}, out.Counts)
}

func TestDashboard_Empty(t *testing.T) {
	repo := mocks.NewRepository(t)
	svc := NewQueryService(repo, domain.NewService())
	repo.On("ListSummaries", mock.Anything, mock.Anything).Return([]*domain.Record{}, nil)

	out, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, out.Groups)
	assert.NotNil(t, out.SharedGroups)
	assert.NotNil(t, out.Standalones)
	assert.Zero(t, out.Counts.Total)
}

func TestDashboard_StoreError(t *testing.T) {
	repo := mocks.NewRepository(t)
	svc := NewQueryService(repo, domain.NewService())
	repo.On("ListSummaries", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

	_, err := svc.Dashboard(context.Background())
	assert.ErrorContains(t, err, "boom")
}

func TestList_MapsFilter(t *testing.T) {
	repo := mocks.NewRepository(t)
	svc := NewQueryService(repo, domain.NewService())

	want := domain.ListFilter{SummaryType: domain.TypeAgent, MediaType: "call", Language: "es", Order: domain.OrderAsc}
	repo.On("ListSummaries", mock.Anything, want).Return([]*domain.Record{rec(1, domain.TypeAgent, "A1", "C", 0)}, nil)

	out, err := svc.List(context.Background(), ListQuery{SummaryType: "Agent", MediaType: "call", Language: "es", Order: "asc"})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "A1", out[0].SummaryID)
}

func TestList_RejectsBadQuery(t *testing.T) {
	svc := NewQueryService(mocks.NewRepository(t), domain.NewService())

	_, err := svc.List(context.Background(), ListQuery{SummaryType: "Robot"})
	assert.ErrorIs(t, err, ErrInvalidQuery)

	_, err = svc.List(context.Background(), ListQuery{Order: "sideways"})
	assert.ErrorIs(t, err, ErrInvalidQuery)
}

func TestDetail_Parent(t *testing.T) {
	repo := mocks.NewRepository(t)
	svc := NewQueryService(repo, domain.NewService())

	parent := rec(1, domain.TypeConversation, "C1", "", 0)
	repo.On("FindSummary", mock.Anything, int64(1)).Return(parent, nil)
	repo.On("ListInsights", mock.Anything, int64(1)).Return([]*domain.Insight{{ID: 5, Type: "reason", Title: "Billing"}}, nil)
	repo.On("ListGroup", mock.Anything, "C1").Return([]*domain.Record{
		parent,
		rec(2, domain.TypeAgent, "A1", "C1", 1),
		rec(3, domain.TypeVirtualAgent, "V1", "C1", 2),
	}, nil)

	out, err := svc.Detail(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, out.IsParent)
	assert.Equal(t, 2, out.ChildCount)
	require.Len(t, out.Children, 2)
	assert.Equal(t, int64(2), out.Children[0].ID)
	require.Len(t, out.Insights, 1)
	assert.Equal(t, "Billing", out.Insights[0].Title)
}

func TestDetail_Child(t *testing.T) {
	repo := mocks.NewRepository(t)
	svc := NewQueryService(repo, domain.NewService())

	repo.On("FindSummary", mock.Anything, int64(2)).Return(rec(2, domain.TypeAgent, "A1", "C1", 1), nil)
	repo.On("ListInsights", mock.Anything, int64(2)).Return([]*domain.Insight{}, nil)

	out, err := svc.Detail(context.Background(), 2)
	require.NoError(t, err)
	assert.False(t, out.IsParent)
	assert.Empty(t, out.Children)
	repo.AssertNotCalled(t, "ListGroup", mock.Anything, mock.Anything)
}

func TestDetail_DuplicateConversationIsNotParent(t *testing.T) {
	repo := mocks.NewRepository(t)
	svc := NewQueryService(repo, domain.NewService())

	winner := rec(1, domain.TypeConversation, "C1", "", 0)
	dup := rec(4, domain.TypeConversation, "C1", "", 3)
	repo.On("FindSummary", mock.Anything, int64(4)).Return(dup, nil)
	repo.On("ListInsights", mock.Anything, int64(4)).Return([]*domain.Insight{}, nil)
	repo.On("ListGroup", mock.Anything, "C1").Return([]*domain.Record{
		winner,
		rec(2, domain.TypeAgent, "A1", "C1", 1),
		dup,
	}, nil)

	out, err := svc.Detail(context.Background(), 4)
	require.NoError(t, err)
	assert.False(t, out.IsParent)
	assert.Zero(t, out.ChildCount)
	assert.Empty(t, out.Children)
}

func TestDetail_ParentPreviewIncludesDuplicateConversation(t *testing.T) {
	repo := mocks.NewRepository(t)
	svc := NewQueryService(repo, domain.NewService())

	winner := rec(1, domain.TypeConversation, "C1", "", 0)
	repo.On("FindSummary", mock.Anything, int64(1)).Return(winner, nil)
	repo.On("ListInsights", mock.Anything, int64(1)).Return([]*domain.Insight{}, nil)
	repo.On("ListGroup", mock.Anything, "C1").Return([]*domain.Record{
		winner,
		rec(4, domain.TypeConversation, "C1", "", 3),
	}, nil)

	out, err := svc.Detail(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, out.IsParent)
	assert.Equal(t, 1, out.ChildCount, "预览与删除使用同一成员范围")
	require.Len(t, out.Children, 1)
	assert.Equal(t, int64(4), out.Children[0].ID)
}

func TestDetail_NotFound(t *testing.T) {
	repo := mocks.NewRepository(t)
	svc := NewQueryService(repo, domain.NewService())
	repo.On("FindSummary", mock.Anything, int64(404)).Return(nil, nil)

	_, err := svc.Detail(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
