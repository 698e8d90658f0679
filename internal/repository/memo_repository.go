package repository

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"daily-tasks/internal/model"
)

// likeEscaper makes LIKE wildcards in user input match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type MemoRepository struct {
	db *gorm.DB
}

func NewMemoRepository(db *gorm.DB) *MemoRepository {
	return &MemoRepository{db: db}
}

func (r *MemoRepository) Create(ctx context.Context, memo *model.Memo) error {
	if err := r.db.WithContext(ctx).Create(memo).Error; err != nil {
		return translate("create memo", err)
	}
	return nil
}

func (r *MemoRepository) FindByID(ctx context.Context, id uint) (*model.Memo, error) {
	var memo model.Memo
	if err := r.db.WithContext(ctx).First(&memo, id).Error; err != nil {
		return nil, translate("find memo", err)
	}
	return &memo, nil
}

// List returns memos newest first. A non-empty query matches title or content.
func (r *MemoRepository) List(ctx context.Context, query string) ([]model.Memo, error) {
	memos := []model.Memo{}
	q := r.db.WithContext(ctx).Order("updated_at DESC, id DESC")
	if query = strings.TrimSpace(query); query != "" {
		like := "%" + likeEscaper.Replace(strings.ToLower(query)) + "%"
		q = q.Where(`LOWER(title) LIKE ? ESCAPE '\' OR LOWER(content) LIKE ? ESCAPE '\'`, like, like)
	}
	if err := q.Find(&memos).Error; err != nil {
		return nil, translate("list memos", err)
	}
	return memos, nil
}

func (r *MemoRepository) Save(ctx context.Context, memo *model.Memo) error {
	if err := r.db.WithContext(ctx).Save(memo).Error; err != nil {
		return translate("save memo", err)
	}
	return nil
}

func (r *MemoRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Memo{}, id)
	if res.Error != nil {
		return translate("delete memo", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete memo: %w", ErrNotFound)
	}
	return nil
}
