// Package adapters はembedフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"angellist_widget/internal/feature/embed/domain/entity"
	"angellist_widget/internal/feature/embed/usecase"
)

// postMetaGorm はPostCompaniesRepositoryインターフェースのgorm実装です。
type postMetaGorm struct {
	db *gorm.DB
}

var _ usecase.PostCompaniesRepository = (*postMetaGorm)(nil)

// NewPostCompaniesRepository は指定されたDB接続でpostMetaGormリポジトリの新しいインスタンスを生成します。
func NewPostCompaniesRepository(db *gorm.DB) *postMetaGorm {
	return &postMetaGorm{db: db}
}

// PostMetaModel は投稿メタデータ1行を表します。(post_id, meta_key) は一意です。
type PostMetaModel struct {
	ID        uint   `gorm:"primaryKey"`
	PostID    uint   `gorm:"not null;uniqueIndex:post_meta_post_key,priority:1"`
	MetaKey   string `gorm:"size:255;not null;uniqueIndex:post_meta_post_key,priority:2"`
	MetaValue string `gorm:"type:text;not null"`
}

func (PostMetaModel) TableName() string {
	return "post_meta"
}

// ListCompanyIDs は投稿の企業IDを登録順に返します。行がない場合はnilを返します。
func (r *postMetaGorm) ListCompanyIDs(ctx context.Context, postID uint) ([]int, error) {
	var rows []PostMetaModel
	if err := r.db.WithContext(ctx).
		Where("post_id = ? AND meta_key = ?", postID, entity.CompaniesMetaKey).
		Limit(1).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return entity.ParseCompanyIDs(rows[0].MetaValue), nil
}

// ReplaceCompanyIDs upserts the post's list. An empty list deletes the row.
func (r *postMetaGorm) ReplaceCompanyIDs(ctx context.Context, postID uint, ids []int) error {
	db := r.db.WithContext(ctx)
	if len(ids) == 0 {
		return db.
			Where("post_id = ? AND meta_key = ?", postID, entity.CompaniesMetaKey).
			Delete(&PostMetaModel{}).Error
	}

	m := PostMetaModel{
		PostID:    postID,
		MetaKey:   entity.CompaniesMetaKey,
		MetaValue: entity.FormatCompanyIDs(ids),
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "post_id"}, {Name: "meta_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"meta_value"}),
	}).Create(&m).Error
}

// DeleteAll は全投稿の企業リストを削除し、削除した行数を返します。
func (r *postMetaGorm) DeleteAll(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("meta_key = ?", entity.CompaniesMetaKey).
		Delete(&PostMetaModel{})
	return res.RowsAffected, res.Error
}
