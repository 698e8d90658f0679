package service

import (
	"context"
	"sort"
	"strings"

	"gorm.io/datatypes"

	"daily-tasks/internal/model"
	"daily-tasks/internal/repository"
)

type MemoInput struct {
	Title   *string   `json:"title"`
	Content *string   `json:"content"`
	Tags    *[]string `json:"tags"`
}

type MemoService struct {
	memos *repository.MemoRepository
}

func NewMemoService(memos *repository.MemoRepository) *MemoService {
	return &MemoService{memos: memos}
}

// List returns memos matching query, narrowed to those carrying tag when set.
func (s *MemoService) List(ctx context.Context, query, tag string) ([]model.Memo, error) {
	memos, err := s.memos.List(ctx, query)
	if err != nil {
		return nil, err
	}
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return memos, nil
	}
	filtered := make([]model.Memo, 0, len(memos))
	for _, memo := range memos {
		for _, t := range memo.Tags {
			if strings.EqualFold(t, tag) {
				filtered = append(filtered, memo)
				break
			}
		}
	}
	return filtered, nil
}

func (s *MemoService) Get(ctx context.Context, id uint) (*model.Memo, error) {
	return s.memos.FindByID(ctx, id)
}

func (s *MemoService) Create(ctx context.Context, input MemoInput) (*model.Memo, error) {
	if input.Title == nil || input.Content == nil {
		return nil, validationError("title and content are required")
	}
	memo := model.Memo{Tags: datatypes.JSONSlice[string]{}}
	if err := applyMemoInput(&memo, input); err != nil {
		return nil, err
	}
	if err := s.memos.Create(ctx, &memo); err != nil {
		return nil, err
	}
	return &memo, nil
}

func (s *MemoService) Update(ctx context.Context, id uint, input MemoInput) (*model.Memo, error) {
	memo, err := s.memos.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyMemoInput(memo, input); err != nil {
		return nil, err
	}
	if err := s.memos.Save(ctx, memo); err != nil {
		return nil, err
	}
	return memo, nil
}

func (s *MemoService) Delete(ctx context.Context, id uint) error {
	return s.memos.Delete(ctx, id)
}

// Tags returns every distinct tag, sorted.
func (s *MemoService) Tags(ctx context.Context) ([]string, error) {
	memos, err := s.memos.List(ctx, "")
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	tags := []string{}
	for _, memo := range memos {
		for _, t := range memo.Tags {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			tags = append(tags, t)
		}
	}
	sort.Strings(tags)
	return tags, nil
}

func applyMemoInput(memo *model.Memo, input MemoInput) error {
	if input.Title != nil {
		title, err := cleanTitle(*input.Title)
		if err != nil {
			return err
		}
		memo.Title = title
	}
	if input.Content != nil {
		content := strings.TrimSpace(*input.Content)
		if content == "" {
			return validationError("content is required")
		}
		memo.Content = content
	}
	if input.Tags != nil {
		memo.Tags = normalizeTags(*input.Tags)
	}
	return nil
}

func normalizeTags(raw []string) datatypes.JSONSlice[string] {
	tags := datatypes.JSONSlice[string]{}
	seen := make(map[string]struct{}, len(raw))
	for _, t := range raw {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		tags = append(tags, t)
	}
	return tags
}
