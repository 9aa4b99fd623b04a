package repository

import (
	"github.com/donghaechoir/choir-backend/internal/domain"
	"gorm.io/gorm"
)

// BoardRepository board category, post and comment data access
type BoardRepository interface {
	FindCategories() ([]*domain.BoardCategory, error)
	FindCategoryByID(id string) (*domain.BoardCategory, error)
	CreateCategory(cat *domain.BoardCategory) error
	UpdateCategory(id string, fields map[string]interface{}) error
	DeleteCategory(id string) error

	// SwapOrder exchanges the order_num of two categories atomically;
	// both updates commit or neither does.
	SwapOrder(a, b *domain.BoardCategory) error

	FindPosts(boardID string) ([]*domain.BoardPost, error)
	FindRecentPosts(limit int) ([]*domain.BoardPost, error)
	FindPostByID(id string) (*domain.BoardPost, error)
	CreatePost(post *domain.BoardPost) error
	DeletePost(id string) error

	CreateComment(comment *domain.BoardComment) error
	FindCommentByID(id string) (*domain.BoardComment, error)
	DeleteComment(id string) error
	// DeleteCommentByValue removes comments matching full structural
	// equality, mirroring the legacy array-remove-by-value write. When two
	// comments are identical it removes both; callers must treat this as a
	// documented ambiguity of the legacy path.
	DeleteCommentByValue(postID, authorUID, content string) (int64, error)
}

type boardRepository struct {
	db *gorm.DB
}

// NewBoardRepository creates a BoardRepository
func NewBoardRepository(db *gorm.DB) BoardRepository {
	return &boardRepository{db: db}
}

func (r *boardRepository) FindCategories() ([]*domain.BoardCategory, error) {
	var cats []*domain.BoardCategory
	err := r.db.Order("order_num ASC").Find(&cats).Error
	return cats, err
}

func (r *boardRepository) FindCategoryByID(id string) (*domain.BoardCategory, error) {
	var cat domain.BoardCategory
	err := r.db.Where("id = ?", id).First(&cat).Error
	return &cat, err
}

func (r *boardRepository) CreateCategory(cat *domain.BoardCategory) error {
	return r.db.Create(cat).Error
}

func (r *boardRepository) UpdateCategory(id string, fields map[string]interface{}) error {
	res := r.db.Model(&domain.BoardCategory{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *boardRepository) DeleteCategory(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id IN (?)",
			tx.Model(&domain.BoardPost{}).Select("id").Where("board_id = ?", id),
		).Delete(&domain.BoardComment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("board_id = ?", id).Delete(&domain.BoardPost{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&domain.BoardCategory{}).Error
	})
}

func (r *boardRepository) SwapOrder(a, b *domain.BoardCategory) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.BoardCategory{}).
			Where("id = ?", a.ID).Update("order_num", b.OrderNum).Error; err != nil {
			return err
		}
		return tx.Model(&domain.BoardCategory{}).
			Where("id = ?", b.ID).Update("order_num", a.OrderNum).Error
	})
}

func (r *boardRepository) FindPosts(boardID string) ([]*domain.BoardPost, error) {
	var posts []*domain.BoardPost
	err := r.db.Preload("Comments", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC")
	}).
		Where("board_id = ?", boardID).
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

func (r *boardRepository) FindRecentPosts(limit int) ([]*domain.BoardPost, error) {
	var posts []*domain.BoardPost
	err := r.db.Order("created_at DESC").Limit(limit).Find(&posts).Error
	return posts, err
}

func (r *boardRepository) FindPostByID(id string) (*domain.BoardPost, error) {
	var post domain.BoardPost
	err := r.db.Preload("Comments").Where("id = ?", id).First(&post).Error
	return &post, err
}

func (r *boardRepository) CreatePost(post *domain.BoardPost) error {
	return r.db.Create(post).Error
}

func (r *boardRepository) DeletePost(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&domain.BoardComment{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&domain.BoardPost{}).Error
	})
}

func (r *boardRepository) CreateComment(comment *domain.BoardComment) error {
	return r.db.Create(comment).Error
}

func (r *boardRepository) FindCommentByID(id string) (*domain.BoardComment, error) {
	var comment domain.BoardComment
	err := r.db.Where("id = ?", id).First(&comment).Error
	return &comment, err
}

func (r *boardRepository) DeleteComment(id string) error {
	return r.db.Where("id = ?", id).Delete(&domain.BoardComment{}).Error
}

func (r *boardRepository) DeleteCommentByValue(postID, authorUID, content string) (int64, error) {
	res := r.db.Where("post_id = ? AND author_uid = ? AND content = ?", postID, authorUID, content).
		Delete(&domain.BoardComment{})
	return res.RowsAffected, res.Error
}
