package mysql

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"campusanon/internal/model"
)

type ReportRepository struct {
	DB *gorm.DB
}

// ReportOutcome is what a report attempt resolved to.
type ReportOutcome struct {
	Created bool  // false: this reporter had already reported the item
	Count   int64 // distinct reports on the item after the attempt
	Hidden  bool  // item hidden state after the attempt
}

// Report inserts the report, recounts, and applies the threshold hide in a
// single transaction. The unique (item, reporter) index absorbs duplicate
// and concurrent reports; the hide is monotonic and, when it fires, an
// audit outbox row is written in the same transaction.
func (r *ReportRepository) Report(ctx context.Context, kind model.ContentKind, itemID, reporterID uint64, reason string, threshold int) (ReportOutcome, error) {
	var out ReportOutcome
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ins := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "item_type"}, {Name: "item_id"}, {Name: "reporter_id"}},
			DoNothing: true,
		}).Create(&model.Report{
			ItemType:   kind,
			ItemID:     itemID,
			ReporterID: reporterID,
			Reason:     reason,
		})
		if ins.Error != nil {
			return ins.Error
		}
		out.Created = ins.RowsAffected > 0

		if err := tx.Model(&model.Report{}).
			Where("item_type = ? AND item_id = ?", kind, itemID).
			Count(&out.Count).Error; err != nil {
			return err
		}

		if !out.Created {
			return nil
		}
		if out.Count < int64(threshold) {
			return nil
		}

		// threshold crossed: hide and record the audit event
		res := tx.Table(tableForKind(kind)).
			Where("id = ? AND hidden = ?", itemID, false).
			Update("hidden", true)
		if res.Error != nil {
			return res.Error
		}
		out.Hidden = true
		if res.RowsAffected == 0 {
			// already hidden by a concurrent report; nothing to audit
			return nil
		}
		return insertModerationEvent(tx, model.EventAutoHide, string(kind), itemID, 0, map[string]any{
			"reports": out.Count,
		})
	})
	return out, err
}

func tableForKind(kind model.ContentKind) string {
	if kind == model.KindComment {
		return "comments"
	}
	return "posts"
}

func insertModerationEvent(tx *gorm.DB, event, itemType string, itemID, actorID uint64, extra map[string]any) error {
	payload := map[string]any{
		"event_time": time.Now().UTC().Format(time.RFC3339Nano),
		"item_type":  itemType,
		"item_id":    itemID,
		"actor_id":   actorID,
	}
	for k, v := range extra {
		payload[k] = v
	}
	raw, _ := json.Marshal(payload)
	return tx.Create(&model.ModerationEvent{
		EventType: event,
		ItemType:  itemType,
		ItemID:    itemID,
		ActorID:   actorID,
		Payload:   string(raw),
		Status:    0,
	}).Error
}

// HideOverride flips the hidden flag outside the threshold machinery
// (admin action) and records it in the outbox.
func (r *ReportRepository) HideOverride(ctx context.Context, kind model.ContentKind, itemID, adminID uint64, hidden bool) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Table(tableForKind(kind)).
			Where("id = ?", itemID).
			Update("hidden", hidden).Error; err != nil {
			return err
		}
		return insertModerationEvent(tx, model.EventAdminUnhide, string(kind), itemID, adminID, nil)
	})
}

// BanOverride sets the banned flag and records the audit event together.
func (r *ReportRepository) BanOverride(ctx context.Context, userID, adminID uint64, banned bool) error {
	event := model.EventAdminBan
	if !banned {
		event = model.EventAdminUnban
	}
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.User{}).
			Where("id = ?", userID).
			Update("banned", banned).Error; err != nil {
			return err
		}
		return insertModerationEvent(tx, event, "", userID, adminID, nil)
	})
}
