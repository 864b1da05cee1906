package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when a lookup matches no video.
var ErrNotFound = errors.New("video not found")

// Video is one uploaded video and its processing status.
type Video struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	OriginalFilename string    `json:"originalFilename"`
	Processed        bool      `json:"processed"`
	CreatedAt        time.Time `json:"createdAt"`
	Thumbnails       []string  `json:"thumbnails,omitempty"`
}

// AddVideo registers a freshly uploaded, not-yet-processed video.
func (d *Database) AddVideo(ctx context.Context, id, name, originalFilename string) error {
	start := time.Now()

	opCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := d.db.ExecContext(opCtx,
		`INSERT INTO videos (id, name, original_filename, processed) VALUES (?, ?, ?, 0)`,
		id, name, originalFilename)
	recordQuery("add_video", start, err)
	if err != nil {
		return fmt.Errorf("failed to add video %s: %w", id, err)
	}
	return nil
}

// GetVideo returns one video with its thumbnail filenames in position order.
func (d *Database) GetVideo(ctx context.Context, id string) (*Video, error) {
	start := time.Now()

	opCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var (
		v       Video
		created int64
	)
	err := d.db.QueryRowContext(opCtx,
		`SELECT id, name, original_filename, processed, created_at FROM videos WHERE id = ?`,
		id).Scan(&v.ID, &v.Name, &v.OriginalFilename, &v.Processed, &created)
	if errors.Is(err, sql.ErrNoRows) {
		recordQuery("get_video", start, nil)
		return nil, ErrNotFound
	}
	if err != nil {
		recordQuery("get_video", start, err)
		return nil, fmt.Errorf("failed to get video %s: %w", id, err)
	}
	v.CreatedAt = time.Unix(created, 0)

	v.Thumbnails, err = d.thumbnailsFor(opCtx, id)
	recordQuery("get_video", start, err)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// ListVideos returns all videos, newest first.
func (d *Database) ListVideos(ctx context.Context) ([]Video, error) {
	start := time.Now()

	opCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := d.db.QueryContext(opCtx,
		`SELECT id, name, original_filename, processed, created_at FROM videos ORDER BY created_at DESC, id`)
	if err != nil {
		recordQuery("list_videos", start, err)
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}
	defer rows.Close()

	videos := make([]Video, 0)
	for rows.Next() {
		var (
			v       Video
			created int64
		)
		if err := rows.Scan(&v.ID, &v.Name, &v.OriginalFilename, &v.Processed, &created); err != nil {
			recordQuery("list_videos", start, err)
			return nil, fmt.Errorf("failed to scan video row: %w", err)
		}
		v.CreatedAt = time.Unix(created, 0)
		videos = append(videos, v)
	}
	err = rows.Err()
	recordQuery("list_videos", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to iterate videos: %w", err)
	}
	return videos, nil
}

// RecordThumbnails stores the thumbnail filenames extracted for a video,
// replacing any previous set. Positions follow slice order.
func (d *Database) RecordThumbnails(ctx context.Context, videoID string, filenames []string) error {
	start := time.Now()

	opCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	tx, err := d.db.BeginTx(opCtx, nil)
	if err != nil {
		recordQuery("record_thumbnails", start, err)
		return fmt.Errorf("failed to begin thumbnail transaction: %w", err)
	}

	err = func() error {
		if _, err := tx.ExecContext(opCtx, `DELETE FROM thumbnails WHERE video_id = ?`, videoID); err != nil {
			return err
		}
		for i, name := range filenames {
			if _, err := tx.ExecContext(opCtx,
				`INSERT INTO thumbnails (video_id, filename, position) VALUES (?, ?, ?)`,
				videoID, name, i); err != nil {
				return err
			}
		}
		return tx.Commit()
	}()
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			err = errors.Join(err, rbErr)
		}
	}
	recordQuery("record_thumbnails", start, err)
	if err != nil {
		return fmt.Errorf("failed to record thumbnails for %s: %w", videoID, err)
	}
	return nil
}

// MarkProcessed flips a video to processed, making it streamable.
func (d *Database) MarkProcessed(ctx context.Context, videoID string) error {
	start := time.Now()

	opCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := d.db.ExecContext(opCtx, `UPDATE videos SET processed = 1 WHERE id = ?`, videoID)
	if err != nil {
		recordQuery("mark_processed", start, err)
		return fmt.Errorf("failed to mark video %s processed: %w", videoID, err)
	}

	n, err := res.RowsAffected()
	recordQuery("mark_processed", start, err)
	if err != nil {
		return fmt.Errorf("failed to check update result for %s: %w", videoID, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (d *Database) thumbnailsFor(ctx context.Context, videoID string) ([]string, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT filename FROM thumbnails WHERE video_id = ? ORDER BY position`, videoID)
	if err != nil {
		return nil, fmt.Errorf("failed to query thumbnails for %s: %w", videoID, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan thumbnail row: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate thumbnails: %w", err)
	}
	return names, nil
}
