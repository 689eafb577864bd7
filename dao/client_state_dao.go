package dao

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"review-explorer/config"
	"review-explorer/db"
	"review-explorer/models"
)

const QUOTA_RECORD_KEY_FORMAT_V1 = "quota_v1:%s"
const CONSENT_KEY_FORMAT_V1 = "cookie_consent_v1:%s"

// One year: the consent notice is shown again after that.
const CONSENT_TTL = 365 * 24 * time.Hour

// ClientStateDAO persists the per client quota record and consent flag.
type ClientStateDAO struct {
	client db.StateClient
}

// NewClientStateDAO initializes a ClientStateDAO with the state client.
func NewClientStateDAO(client db.StateClient) *ClientStateDAO {
	return &ClientStateDAO{client: client}
}

// GetQuotaRecord returns the stored quota record, or nil when the client has none.
func (dao *ClientStateDAO) GetQuotaRecord(ctx context.Context, clientID string) (*models.QuotaRecord, error) {
	key := fmt.Sprintf(QUOTA_RECORD_KEY_FORMAT_V1, clientID)
	str, err := dao.client.Get(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quota record: %w", err)
	}

	var record models.QuotaRecord
	if err := json.Unmarshal([]byte(str), &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal quota record JSON: %w", err)
	}
	return &record, nil
}

// SetQuotaRecord stores the quota record for one day.
func (dao *ClientStateDAO) SetQuotaRecord(ctx context.Context, clientID string, record models.QuotaRecord) error {
	key := fmt.Sprintf(QUOTA_RECORD_KEY_FORMAT_V1, clientID)
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal quota record for client %s: %w", clientID, err)
	}
	if err := dao.client.Set(ctx, key, string(data), config.QUOTA_RECORD_TTL_HOURS*time.Hour); err != nil {
		return fmt.Errorf("failed to set quota record: %w", err)
	}
	return nil
}

// UpdateQuotaRecord atomically replaces the quota record with the one fn
// returns. fn receives nil when the client has no record. An error from fn
// is returned unchanged and nothing is written.
func (dao *ClientStateDAO) UpdateQuotaRecord(ctx context.Context, clientID string, fn func(record *models.QuotaRecord) (models.QuotaRecord, error)) error {
	key := fmt.Sprintf(QUOTA_RECORD_KEY_FORMAT_V1, clientID)
	var fnErr error
	err := dao.client.Update(ctx, key, config.QUOTA_RECORD_TTL_HOURS*time.Hour, func(current string, exists bool) (string, error) {
		var record *models.QuotaRecord
		if exists {
			record = &models.QuotaRecord{}
			if err := json.Unmarshal([]byte(current), record); err != nil {
				return "", fmt.Errorf("failed to unmarshal quota record JSON: %w", err)
			}
		}

		next, err := fn(record)
		if err != nil {
			fnErr = err
			return "", err
		}
		data, err := json.Marshal(next)
		if err != nil {
			return "", fmt.Errorf("failed to marshal quota record for client %s: %w", clientID, err)
		}
		return string(data), nil
	})
	if fnErr != nil {
		return fnErr
	}
	if err != nil {
		return fmt.Errorf("failed to update quota record: %w", err)
	}
	return nil
}

// HasConsent reports whether the client acknowledged the cookie notice.
func (dao *ClientStateDAO) HasConsent(ctx context.Context, clientID string) (bool, error) {
	key := fmt.Sprintf(CONSENT_KEY_FORMAT_V1, clientID)
	str, err := dao.client.Get(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get consent flag: %w", err)
	}
	return str == "true", nil
}

// SetConsent records the client's acknowledgement.
func (dao *ClientStateDAO) SetConsent(ctx context.Context, clientID string) error {
	key := fmt.Sprintf(CONSENT_KEY_FORMAT_V1, clientID)
	if err := dao.client.Set(ctx, key, "true", CONSENT_TTL); err != nil {
		return fmt.Errorf("failed to set consent flag: %w", err)
	}
	return nil
}
