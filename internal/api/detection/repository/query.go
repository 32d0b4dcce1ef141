package detectionRepository

const (
	queryCreateResult = `
INSERT INTO detection_results (id, type, num_faces, num_deepfakes, faces, processing_time, fps, image_url, user_id, created_at)
VALUES (:id, :type, :num_faces, :num_deepfakes, :faces, :processing_time, :fps, :image_url, :user_id, :created_at)`

	queryListResults = `
SELECT id, type, num_faces, num_deepfakes, faces, processing_time, fps, image_url, user_id, created_at
FROM detection_results
    ORDER BY created_at DESC
    OFFSET :skip LIMIT :limit`

	queryCountResults = `
SELECT COUNT(*) FROM detection_results`

	queryDeleteResult = `
DELETE FROM detection_results
    WHERE id = :id`

	queryCreateLog = `
INSERT INTO detection_logs (id, detection_id, log_type, message, metadata, created_at)
VALUES (:id, :detection_id, :log_type, :message, :metadata, :created_at)`

	queryListLogs = `
SELECT id, detection_id, log_type, message, metadata, created_at
FROM detection_logs
    ORDER BY created_at DESC
    OFFSET :skip LIMIT :limit`

	queryCountLogs = `
SELECT COUNT(*) FROM detection_logs`

	queryStatsTotals = `
SELECT COUNT(*) AS total_detections,
       COALESCE(SUM(num_faces), 0) AS total_faces,
       COALESCE(SUM(num_deepfakes), 0) AS total_deepfakes
FROM detection_results`

	queryStatsByType = `
SELECT type, COUNT(*) AS count
FROM detection_results
    GROUP BY type`

	queryStatsRecent = `
SELECT id, type, num_faces, num_deepfakes, faces, processing_time, fps, image_url, user_id, created_at
FROM detection_results
    ORDER BY created_at DESC
    LIMIT 10`
)
