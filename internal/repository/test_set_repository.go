package repository

import (
	"context"

	"github.com/lshigami/aptiscore/internal/model"
	"gorm.io/gorm"
)

// TestSetWithCount is a set with the number of questions mapped to it.
type TestSetWithCount struct {
	model.TestSet
	QuestionCount int
}

type TestSetRepository interface {
	ListWithQuestionCount(ctx context.Context) ([]TestSetWithCount, error)
	FindByID(ctx context.Context, id uint) (*model.TestSet, error)
	ListItems(ctx context.Context, setID uint) ([]model.SetQuestion, error)
	CountQuestions(ctx context.Context, setID uint) (int, error)
	// MaxScore sums the weights of the set, counting a missing override as 1.
	MaxScore(ctx context.Context, setID uint) (float64, error)
	WithTx(tx *gorm.DB) TestSetRepository
}

type testSetRepository struct {
	db *gorm.DB
}

func NewTestSetRepository(db *gorm.DB) TestSetRepository {
	return &testSetRepository{db: db}
}

func (r *testSetRepository) WithTx(tx *gorm.DB) TestSetRepository {
	return &testSetRepository{db: tx}
}

func (r *testSetRepository) FindByID(ctx context.Context, id uint) (*model.TestSet, error) {
	var set model.TestSet
	if err := r.db.WithContext(ctx).First(&set, id).Error; err != nil {
		return nil, err
	}
	return &set, nil
}

func (r *testSetRepository) ListWithQuestionCount(ctx context.Context) ([]TestSetWithCount, error) {
	var sets []model.TestSet
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&sets).Error; err != nil {
		return nil, err
	}
	var counts []struct {
		SetID uint
		Total int
	}
	err := r.db.WithContext(ctx).Model(&model.SetQuestion{}).
		Select("set_id, COUNT(*) AS total").
		Group("set_id").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	bySet := make(map[uint]int, len(counts))
	for _, c := range counts {
		bySet[c.SetID] = c.Total
	}
	out := make([]TestSetWithCount, 0, len(sets))
	for _, s := range sets {
		out = append(out, TestSetWithCount{TestSet: s, QuestionCount: bySet[s.ID]})
	}
	return out, nil
}

func (r *testSetRepository) ListItems(ctx context.Context, setID uint) ([]model.SetQuestion, error) {
	var items []model.SetQuestion
	err := r.db.WithContext(ctx).
		Preload("Question").
		Where("set_id = ?", setID).
		Order("order_in_set ASC, id ASC").
		Find(&items).Error
	return items, err
}

func (r *testSetRepository) CountQuestions(ctx context.Context, setID uint) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.SetQuestion{}).Where("set_id = ?", setID).Count(&count).Error
	return int(count), err
}

func (r *testSetRepository) MaxScore(ctx context.Context, setID uint) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&model.SetQuestion{}).
		Select("COALESCE(SUM(COALESCE(score, 1)), 0)").
		Where("set_id = ?", setID).
		Scan(&total).Error
	return total, err
}
