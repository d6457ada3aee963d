package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/summarydesk/backend/internal/domain/summary"
)

// querier *sql.DB 与 *sql.Tx 的公共方法
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// summaryRepository 摘要仓储实现（SQLite / MySQL）
type summaryRepository struct {
	db   *DB
	q    querier
	inTx bool
}

// NewSummaryRepository 创建摘要仓储实例
func NewSummaryRepository(db *DB) summary.Repository {
	return &summaryRepository{db: db, q: db.DB}
}

const summaryColumns = `s.id, s.summary_type, s.media_type, s.language, s.summary_id, s.agent_id,
	s.source_id, s.summary, s.is_generated, s.date_created, s.conversation_id, s.created_at,
	(SELECT COUNT(*) FROM summary_insights i WHERE i.owner_record_id = s.id) AS insight_count`

// InsertSummary 插入摘要
func (r *summaryRepository) InsertSummary(ctx context.Context, rec *summary.Record) (int64, error) {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO conversation_summaries
		(summary_type, media_type, language, summary_id, agent_id, source_id, summary,
		 is_generated, date_created, conversation_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	generated := 0
	if rec.Generated {
		generated = 1
	}

	result, err := r.q.ExecContext(ctx, query,
		string(rec.SummaryType),
		rec.MediaType,
		rec.Language,
		rec.SummaryID,
		nullString(rec.AgentID),
		rec.SourceID,
		rec.Summary,
		generated,
		rec.DateCreated.UnixNano(),
		nullString(rec.ConversationID),
		rec.CreatedAt.UnixNano(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert summary: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get summary id: %w", err)
	}
	rec.ID = id
	return id, nil
}

// InsertInsight 插入洞察
func (r *summaryRepository) InsertInsight(ctx context.Context, ownerID int64, in *summary.Insight) (int64, error) {
	query := `
		INSERT INTO summary_insights (owner_record_id, insight_type, title, description, outcome)
		VALUES (?, ?, ?, ?, ?)`

	result, err := r.q.ExecContext(ctx, query,
		ownerID,
		in.Type,
		in.Title,
		in.Description,
		nullString(in.Outcome),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert insight: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get insight id: %w", err)
	}
	in.ID = id
	in.OwnerRecordID = ownerID
	return id, nil
}

// FindSummary 根据 ID 查找摘要
func (r *summaryRepository) FindSummary(ctx context.Context, id int64) (*summary.Record, error) {
	query := `SELECT ` + summaryColumns + ` FROM conversation_summaries s WHERE s.id = ?`

	rec, err := scanRecord(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query summary: %w", err)
	}
	return rec, nil
}

// ListSummaries 列出摘要
func (r *summaryRepository) ListSummaries(ctx context.Context, filter summary.ListFilter) ([]*summary.Record, error) {
	var where []string
	var args []any
	if filter.SummaryType != "" {
		where = append(where, "s.summary_type = ?")
		args = append(args, string(filter.SummaryType))
	}
	if filter.MediaType != "" {
		where = append(where, "s.media_type = ?")
		args = append(args, filter.MediaType)
	}
	if filter.Language != "" {
		where = append(where, "s.language = ?")
		args = append(args, filter.Language)
	}

	query := `SELECT ` + summaryColumns + ` FROM conversation_summaries s`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	if filter.Order == summary.OrderAsc {
		query += ` ORDER BY s.date_created ASC, s.id ASC`
	} else {
		query += ` ORDER BY s.date_created DESC, s.id DESC`
	}

	return r.queryRecords(ctx, query, args...)
}

// groupMembership 分组键匹配条件，与 summary.Record.GroupingKey 一致：
// 会话记录按 summary_id，其他记录按 conversation_id
const groupMembership = `((s.summary_type = 'Conversation' AND s.summary_id = ?)
	OR (s.summary_type <> 'Conversation' AND s.conversation_id = ?))`

// ListGroup 列出同一分组键的全部记录
func (r *summaryRepository) ListGroup(ctx context.Context, key string) ([]*summary.Record, error) {
	query := `SELECT ` + summaryColumns + `
		FROM conversation_summaries s
		WHERE ` + groupMembership + `
		ORDER BY s.date_created ASC, s.id ASC`

	return r.queryRecords(ctx, query, key, key)
}

// ListInsights 列出摘要的洞察
func (r *summaryRepository) ListInsights(ctx context.Context, ownerID int64) ([]*summary.Insight, error) {
	query := `
		SELECT id, owner_record_id, insight_type, title, description, outcome
		FROM summary_insights
		WHERE owner_record_id = ?
		ORDER BY id ASC`

	rows, err := r.q.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query insights: %w", err)
	}
	defer rows.Close()

	insights := []*summary.Insight{}
	for rows.Next() {
		var in summary.Insight
		var outcome sql.NullString
		if err := rows.Scan(&in.ID, &in.OwnerRecordID, &in.Type, &in.Title, &in.Description, &outcome); err != nil {
			return nil, fmt.Errorf("failed to scan insight: %w", err)
		}
		in.Outcome = outcome.String
		insights = append(insights, &in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate insights: %w", err)
	}
	return insights, nil
}

// DeleteSummary 删除单条摘要，洞察由外键级联删除
func (r *summaryRepository) DeleteSummary(ctx context.Context, id int64) (int64, error) {
	result, err := r.q.ExecContext(ctx, `DELETE FROM conversation_summaries WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete summary: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return affected, nil
}

// DeleteGroup 删除同一分组键的记录，exceptID 指定的记录保留
// MySQL 不允许子查询直接引用被删除的表，因此包一层派生表
func (r *summaryRepository) DeleteGroup(ctx context.Context, key string, exceptID int64) (int64, error) {
	query := `DELETE FROM conversation_summaries
		WHERE id IN (
			SELECT id FROM (
				SELECT s.id FROM conversation_summaries s
				WHERE ` + groupMembership + ` AND s.id <> ?
			) AS members
		)`

	result, err := r.q.ExecContext(ctx, query, key, key, exceptID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete group: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return affected, nil
}

// WithinTx 在事务中执行 fn
// 已处于事务中时直接复用当前事务
func (r *summaryRepository) WithinTx(ctx context.Context, fn func(repo summary.Repository) error) error {
	if r.inTx {
		return fn(r)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	txRepo := &summaryRepository{db: r.db, q: tx, inTx: true}
	if err := fn(txRepo); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *summaryRepository) queryRecords(ctx context.Context, query string, args ...any) ([]*summary.Record, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query summaries: %w", err)
	}
	defer rows.Close()

	records := []*summary.Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan summary: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate summaries: %w", err)
	}
	return records, nil
}

// rowScanner *sql.Row 与 *sql.Rows 的公共扫描接口
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*summary.Record, error) {
	var rec summary.Record
	var summaryType string
	var agentID, conversationID sql.NullString
	var generated int
	var dateCreated, createdAt int64

	err := row.Scan(
		&rec.ID,
		&summaryType,
		&rec.MediaType,
		&rec.Language,
		&rec.SummaryID,
		&agentID,
		&rec.SourceID,
		&rec.Summary,
		&generated,
		&dateCreated,
		&conversationID,
		&createdAt,
		&rec.InsightCount,
	)
	if err != nil {
		return nil, err
	}

	rec.SummaryType = summary.SummaryType(summaryType)
	rec.AgentID = agentID.String
	rec.ConversationID = conversationID.String
	rec.Generated = generated == 1
	rec.DateCreated = time.Unix(0, dateCreated).UTC()
	rec.CreatedAt = time.Unix(0, createdAt).UTC()
	return &rec, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// 编译时检查接口实现
var _ summary.Repository = (*summaryRepository)(nil)
