package storage

import (
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Contact messages

func (r *Repository) SaveContactMessage(msg *ContactMessage) error {
	return r.db.Create(msg).Error
}

func (r *Repository) UpdateContactMessage(msg *ContactMessage) error {
	return r.db.Save(msg).Error
}

func (r *Repository) GetContactMessage(reference string) (*ContactMessage, error) {
	var msg ContactMessage
	err := r.db.Where("reference = ?", reference).First(&msg).Error
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *Repository) RecentContactMessages(limit int) ([]ContactMessage, error) {
	var msgs []ContactMessage
	err := r.db.Order("created_at DESC").Order("id DESC").Limit(limit).Find(&msgs).Error
	return msgs, err
}

func (r *Repository) CountContactMessagesByStatus() (map[string]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := r.db.Model(&ContactMessage{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
