package storage

import "time"

// Contact message delivery states.
const (
	ContactPending   = "pending"
	ContactSimulated = "simulated"
	ContactSent      = "sent"
	ContactFailed    = "failed"
)

type ContactMessage struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Reference string `gorm:"uniqueIndex;not null" json:"reference"`
	Name      string `gorm:"not null" json:"name"`
	Email     string `gorm:"index;not null" json:"email"`
	Subject   string `gorm:"not null" json:"subject"`
	Message   string `gorm:"type:text;not null" json:"message"`
	Origin    string `json:"origin"`

	Status    string `gorm:"index;not null;default:'pending'" json:"status"` // pending, simulated, sent, failed
	MailID    string `json:"mail_id"`
	LastError string `gorm:"type:text" json:"last_error"`
}
