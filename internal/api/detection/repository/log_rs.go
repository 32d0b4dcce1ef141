package detectionRepository

import (
	"context"
	"database/sql"
	"encoding/json"

	"FaceGuard/internal/entity"
	contextPkg "FaceGuard/pkg/context"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type LogDB struct {
	ID          sql.NullString  `db:"id"`
	DetectionID sql.NullString  `db:"detection_id"`
	LogType     sql.NullString  `db:"log_type"`
	Message     sql.NullString  `db:"message"`
	Metadata    json.RawMessage `db:"metadata"`
	CreatedAt   sql.NullTime    `db:"created_at"`
}

func (l LogDB) toEntity() entity.DetectionLog {
	logEntry := entity.DetectionLog{
		ID:          l.ID.String,
		DetectionID: l.DetectionID.String,
		LogType:     entity.LogType(l.LogType.String),
		Message:     l.Message.String,
		CreatedAt:   l.CreatedAt.Time,
	}

	if len(l.Metadata) > 0 {
		_ = json.Unmarshal(l.Metadata, &logEntry.Metadata)
	}

	return logEntry
}

func (r *logRepository) CreateLog(c context.Context, logEntry entity.DetectionLog) error {
	requestID := contextPkg.GetRequestID(c)

	metadata, err := json.Marshal(logEntry.Metadata)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to marshal metadata for CreateLog")
		return err
	}

	argsKV := map[string]interface{}{
		"id":           logEntry.ID,
		"detection_id": logEntry.DetectionID,
		"log_type":     string(logEntry.LogType),
		"message":      logEntry.Message,
		"metadata":     metadata,
		"created_at":   logEntry.CreatedAt,
	}

	query, args, err := sqlx.Named(queryCreateLog, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateLog")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(c, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating detection log")
		return err
	}

	return nil
}

func (r *logRepository) ListLogs(c context.Context, skip, limit int) ([]entity.DetectionLog, int, error) {
	requestID := contextPkg.GetRequestID(c)

	argsKV := map[string]interface{}{
		"skip":  skip,
		"limit": limit,
	}

	query, args, err := sqlx.Named(queryListLogs, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListLogs named query preparation err")
		return nil, 0, err
	}
	query = r.q.Rebind(query)

	var rows []LogDB
	if err := sqlx.SelectContext(c, r.q, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when listing detection logs")
		return nil, 0, err
	}

	var total int
	if err := sqlx.GetContext(c, r.q, &total, queryCountLogs); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when counting detection logs")
		return nil, 0, err
	}

	logs := make([]entity.DetectionLog, 0, len(rows))
	for _, row := range rows {
		logs = append(logs, row.toEntity())
	}

	return logs, total, nil
}
