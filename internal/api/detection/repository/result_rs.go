package detectionRepository

import (
	"context"
	"database/sql"
	"encoding/json"

	"FaceGuard/internal/api/detection"
	"FaceGuard/internal/entity"
	"FaceGuard/internal/pipeline"
	contextPkg "FaceGuard/pkg/context"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type ResultDB struct {
	ID             sql.NullString  `db:"id"`
	Type           sql.NullString  `db:"type"`
	NumFaces       int             `db:"num_faces"`
	NumDeepfakes   int             `db:"num_deepfakes"`
	Faces          json.RawMessage `db:"faces"`
	ProcessingTime float64         `db:"processing_time"`
	FPS            float64         `db:"fps"`
	ImageURL       sql.NullString  `db:"image_url"`
	UserID         sql.NullString  `db:"user_id"`
	CreatedAt      sql.NullTime    `db:"created_at"`
}

func (r ResultDB) toEntity() entity.DetectionResult {
	result := entity.DetectionResult{
		ID:             r.ID.String,
		Type:           entity.DetectionType(r.Type.String),
		NumFaces:       r.NumFaces,
		NumDeepfakes:   r.NumDeepfakes,
		Faces:          []pipeline.FaceResult{},
		ProcessingTime: r.ProcessingTime,
		FPS:            r.FPS,
		ImageURL:       r.ImageURL.String,
		UserID:         r.UserID.String,
		CreatedAt:      r.CreatedAt.Time,
	}

	if len(r.Faces) > 0 {
		// A row with corrupt face JSON still lists; the faces come back empty.
		_ = json.Unmarshal(r.Faces, &result.Faces)
	}

	return result
}

func (r *resultRepository) CreateResult(c context.Context, result entity.DetectionResult) error {
	requestID := contextPkg.GetRequestID(c)

	faces, err := json.Marshal(result.Faces)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to marshal faces for CreateResult")
		return err
	}

	argsKV := map[string]interface{}{
		"id":              result.ID,
		"type":            string(result.Type),
		"num_faces":       result.NumFaces,
		"num_deepfakes":   result.NumDeepfakes,
		"faces":           faces,
		"processing_time": result.ProcessingTime,
		"fps":             result.FPS,
		"image_url":       result.ImageURL,
		"user_id":         sql.NullString{String: result.UserID, Valid: result.UserID != ""},
		"created_at":      result.CreatedAt,
	}

	query, args, err := sqlx.Named(queryCreateResult, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateResult")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(c, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating detection result")
		return err
	}

	return nil
}

func (r *resultRepository) ListResults(c context.Context, skip, limit int) ([]entity.DetectionResult, int, error) {
	requestID := contextPkg.GetRequestID(c)

	argsKV := map[string]interface{}{
		"skip":  skip,
		"limit": limit,
	}

	query, args, err := sqlx.Named(queryListResults, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListResults named query preparation err")
		return nil, 0, err
	}
	query = r.q.Rebind(query)

	var rows []ResultDB
	if err := sqlx.SelectContext(c, r.q, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when listing detection results")
		return nil, 0, err
	}

	var total int
	if err := sqlx.GetContext(c, r.q, &total, queryCountResults); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when counting detection results")
		return nil, 0, err
	}

	results := make([]entity.DetectionResult, 0, len(rows))
	for _, row := range rows {
		results = append(results, row.toEntity())
	}

	return results, total, nil
}

func (r *resultRepository) DeleteResult(c context.Context, id string) error {
	requestID := contextPkg.GetRequestID(c)

	argsKV := map[string]interface{}{
		"id": id,
	}

	query, args, err := sqlx.Named(queryDeleteResult, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteResult named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	res, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when deleting detection result")
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		r.log.WithFields(logrus.Fields{
			"request_id":   requestID,
			"detection_id": id,
		}).Warn("DeleteResult no rows affected")
		return detection.ErrDetectionNotFound
	}

	return nil
}

func (r *resultRepository) GetStats(c context.Context) (entity.DetectionStats, error) {
	requestID := contextPkg.GetRequestID(c)

	var totals struct {
		TotalDetections int `db:"total_detections"`
		TotalFaces      int `db:"total_faces"`
		TotalDeepfakes  int `db:"total_deepfakes"`
	}
	if err := sqlx.GetContext(c, r.q, &totals, queryStatsTotals); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when aggregating detection totals")
		return entity.DetectionStats{}, err
	}

	var byType []struct {
		Type  string `db:"type"`
		Count int    `db:"count"`
	}
	if err := sqlx.SelectContext(c, r.q, &byType, queryStatsByType); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when grouping detections by type")
		return entity.DetectionStats{}, err
	}

	var recentRows []ResultDB
	if err := sqlx.SelectContext(c, r.q, &recentRows, queryStatsRecent); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when listing recent detections")
		return entity.DetectionStats{}, err
	}

	stats := entity.DetectionStats{
		TotalDetections:  totals.TotalDetections,
		TotalFaces:       totals.TotalFaces,
		TotalDeepfakes:   totals.TotalDeepfakes,
		DetectionsByType: make(map[string]int, len(byType)),
		RecentDetections: make([]entity.DetectionResult, 0, len(recentRows)),
	}
	for _, row := range byType {
		stats.DetectionsByType[row.Type] = row.Count
	}
	for _, row := range recentRows {
		stats.RecentDetections = append(stats.RecentDetections, row.toEntity())
	}

	return stats, nil
}
