package service

import (
	"errors"
	"strings"

	"github.com/donghaechoir/choir-backend/internal/common"
	"github.com/donghaechoir/choir-backend/internal/domain"
	"github.com/donghaechoir/choir-backend/internal/live"
	"github.com/donghaechoir/choir-backend/internal/repository"
	"github.com/donghaechoir/choir-backend/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BoardService manages board categories, posts and comments. Category
// mutations fan out the category list; post and comment mutations fan out
// the owning board's full post stream.
type BoardService struct {
	boards    repository.BoardRepository
	publisher Publisher
}

// NewBoardService creates a BoardService
func NewBoardService(boards repository.BoardRepository, publisher Publisher) *BoardService {
	return &BoardService{boards: boards, publisher: publisher}
}

// Categories returns all board categories ordered by order_num
func (s *BoardService) Categories() ([]*domain.BoardCategory, error) {
	return s.boards.FindCategories()
}

// CreateCategory appends a new category at the end of the order
func (s *BoardService) CreateCategory(name, description string) (*domain.BoardCategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, common.ErrInvalidInput
	}
	cats, err := s.boards.FindCategories()
	if err != nil {
		return nil, err
	}
	cat := &domain.BoardCategory{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		OrderNum:    len(cats),
	}
	if err := s.boards.CreateCategory(cat); err != nil {
		return nil, err
	}
	s.publishCategories()
	return cat, nil
}

// UpdateCategory renames a category or changes its description
func (s *BoardService) UpdateCategory(id, name, description string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return common.ErrInvalidInput
	}
	err := s.boards.UpdateCategory(id, map[string]interface{}{
		"name":        name,
		"description": description,
	})
	if err != nil {
		return err
	}
	s.publishCategories()
	return nil
}

// MoveCategory shifts a category one position up or down by swapping its
// order_num with the neighbor. Both rows change in one transaction, so a
// failure never leaves the order half-swapped. At the edge it is a no-op.
func (s *BoardService) MoveCategory(id string, up bool) error {
	cats, err := s.boards.FindCategories()
	if err != nil {
		return err
	}
	idx := -1
	for i, c := range cats {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return common.ErrBoardNotFound
	}

	other := idx + 1
	if up {
		other = idx - 1
	}
	if other < 0 || other >= len(cats) {
		return nil
	}
	if err := s.boards.SwapOrder(cats[idx], cats[other]); err != nil {
		return err
	}
	s.publishCategories()
	return nil
}

// DeleteCategory removes a category with all its posts and comments
func (s *BoardService) DeleteCategory(id string) error {
	if _, err := s.boards.FindCategoryByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.ErrBoardNotFound
		}
		return err
	}
	if err := s.boards.DeleteCategory(id); err != nil {
		return err
	}
	s.publishCategories()
	return nil
}

// Posts returns a board's posts newest first, comments eagerly loaded
// oldest first
func (s *BoardService) Posts(boardID string) ([]*domain.BoardPost, error) {
	if _, err := s.boards.FindCategoryByID(boardID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrBoardNotFound
		}
		return nil, err
	}
	return s.boards.FindPosts(boardID)
}

// RecentPosts returns the newest posts across all boards (dashboard feed)
func (s *BoardService) RecentPosts(limit int) ([]*domain.BoardPost, error) {
	if limit <= 0 || limit > 50 {
		limit = 5
	}
	return s.boards.FindRecentPosts(limit)
}

// CreatePost writes a new post authored by the session member
func (s *BoardService) CreatePost(boardID string, sess *Session, content, imageURL, youtubeURL string) (*domain.BoardPost, error) {
	if strings.TrimSpace(content) == "" && imageURL == "" && youtubeURL == "" {
		return nil, common.ErrInvalidInput
	}
	if _, err := s.boards.FindCategoryByID(boardID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrBoardNotFound
		}
		return nil, err
	}
	post := &domain.BoardPost{
		ID:         uuid.NewString(),
		BoardID:    boardID,
		Author:     sess.Name,
		AuthorUID:  sess.UID,
		Content:    content,
		ImageURL:   optionalURL(imageURL),
		YoutubeURL: optionalURL(youtubeURL),
	}
	if err := s.boards.CreatePost(post); err != nil {
		return nil, err
	}
	s.publishBoard(boardID)
	return post, nil
}

// DeletePost removes a post (with its comments). Only the author or a
// board manager may delete.
func (s *BoardService) DeletePost(postID string, sess *Session) error {
	post, err := s.boards.FindPostByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.ErrPostNotFound
		}
		return err
	}
	if post.AuthorUID != sess.UID && !sess.Can(domain.CapManageBoards) {
		return common.ErrForbidden
	}
	if err := s.boards.DeletePost(postID); err != nil {
		return err
	}
	s.publishBoard(post.BoardID)
	return nil
}

// AddComment appends a comment to a post
func (s *BoardService) AddComment(postID string, sess *Session, content, imageURL string) (*domain.BoardComment, error) {
	if strings.TrimSpace(content) == "" && imageURL == "" {
		return nil, common.ErrInvalidInput
	}
	post, err := s.boards.FindPostByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrPostNotFound
		}
		return nil, err
	}
	comment := &domain.BoardComment{
		ID:        uuid.NewString(),
		PostID:    postID,
		Author:    sess.Name,
		AuthorUID: sess.UID,
		Content:   content,
		ImageURL:  optionalURL(imageURL),
	}
	if err := s.boards.CreateComment(comment); err != nil {
		return nil, err
	}
	s.publishBoard(post.BoardID)
	return comment, nil
}

// DeleteComment removes one comment by id. Only the author or a board
// manager may delete.
func (s *BoardService) DeleteComment(commentID string, sess *Session) error {
	comment, err := s.boards.FindCommentByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.ErrCommentNotFound
		}
		return err
	}
	if comment.AuthorUID != sess.UID && !sess.Can(domain.CapManageBoards) {
		return common.ErrForbidden
	}
	if err := s.boards.DeleteComment(commentID); err != nil {
		return err
	}

	post, err := s.boards.FindPostByID(comment.PostID)
	if err == nil {
		s.publishBoard(post.BoardID)
	}
	return nil
}

// DeleteCommentByValue removes the caller's comments on a post matching
// content exactly. This is the legacy remove-by-value path: identical
// comments are indistinguishable and all matches go at once.
func (s *BoardService) DeleteCommentByValue(postID string, sess *Session, content string) (int64, error) {
	post, err := s.boards.FindPostByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, common.ErrPostNotFound
		}
		return 0, err
	}
	removed, err := s.boards.DeleteCommentByValue(postID, sess.UID, content)
	if err != nil {
		return 0, err
	}
	if removed == 0 {
		return 0, common.ErrCommentNotFound
	}
	s.publishBoard(post.BoardID)
	return removed, nil
}

// optionalURL maps an empty attachment URL to a NULL column
func optionalURL(u string) *string {
	if u == "" {
		return nil
	}
	return &u
}

// publishCategories pushes the category list to live subscribers
func (s *BoardService) publishCategories() {
	cats, err := s.boards.FindCategories()
	if err != nil {
		logger.Error("게시판 목록 스냅샷 조회 실패: %v", err)
		return
	}
	s.publisher.Publish(live.TopicBoardCategories, cats)
}

// publishBoard pushes one board's full post stream to live subscribers
func (s *BoardService) publishBoard(boardID string) {
	posts, err := s.boards.FindPosts(boardID)
	if err != nil {
		logger.Error("게시글 스냅샷 조회 실패 board=%s: %v", boardID, err)
		return
	}
	s.publisher.Publish(live.TopicBoard(boardID), posts)
}
