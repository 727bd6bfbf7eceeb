package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type (
	// Report is one analyzed inbound message: what kind of content arrived,
	// which provider ended up answering, and what it cost. Sender is stored
	// as a short sha256 digest, never the raw phone number.
	Report struct {
		ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
		SenderHash   string          `gorm:"size:16;not null;index" json:"sender_hash"`
		ContentKind  string          `gorm:"size:16;not null" json:"content_kind"`
		Provider     string          `gorm:"size:16" json:"provider"`
		Model        string          `gorm:"size:64" json:"model"`
		FallbackUsed bool            `gorm:"not null;default:false" json:"fallback_used"`
		RiskLevel    *string         `gorm:"size:16" json:"risk_level"`
		Tokens       int             `gorm:"not null;default:0" json:"tokens"`
		Cost         decimal.Decimal `gorm:"type:decimal(10,6);not null;default:0" json:"cost"`
		Succeeded    bool            `gorm:"not null" json:"succeeded"`
		CreatedAt    time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP;index" json:"created_at"`
	}
)
