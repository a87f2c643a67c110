package usecase

import (
	"context"
	"fmt"
	"strings"

	"movie-review/internal/data/entity"
	"movie-review/internal/data/repository"
	"movie-review/internal/dto/request"
	"movie-review/internal/dto/response"
	"movie-review/pkg/utils"

	"go.uber.org/zap"
)

const (
	DefaultPostLimit = 5
	MaxPostLimit     = 100
)

type PostService interface {
	ListPosts(ctx context.Context, limit int) ([]response.PostResponse, error)
	GetPost(ctx context.Context, postID string) (*response.PostResponse, error)
	CreatePost(ctx context.Context, identity entity.Identity, req *request.CreatePostRequest) (*response.PostResponse, error)
}

type postService struct {
	repo   repository.PostRepository
	driver string
	log    *zap.Logger
}

func NewPostService(repo *repository.Repository, log *zap.Logger) PostService {
	return &postService{
		repo:   repo.Post,
		driver: repo.Driver,
		log:    log.With(zap.String("service", "post")),
	}
}

func (s *postService) ListPosts(ctx context.Context, limit int) ([]response.PostResponse, error) {
	if s.repo == nil {
		return nil, storeNotInitialized(s.driver)
	}

	if limit < 1 {
		limit = DefaultPostLimit
	}
	if limit > MaxPostLimit {
		limit = MaxPostLimit
	}

	posts, err := s.repo.FindRecent(ctx, limit)
	if err != nil {
		s.log.Error("Failed to list posts", zap.Error(err), zap.Int("limit", limit))
		return nil, fmt.Errorf("list posts: %w", err)
	}

	return response.PostsToResponse(posts), nil
}

func (s *postService) GetPost(ctx context.Context, postID string) (*response.PostResponse, error) {
	if s.repo == nil {
		return nil, storeNotInitialized(s.driver)
	}

	postID = strings.TrimSpace(postID)
	if postID == "" {
		return nil, utils.NewError(utils.ErrNotFound, "Post not found")
	}

	post, err := s.repo.FindByID(ctx, postID)
	if err != nil {
		s.log.Error("Failed to get post", zap.Error(err), zap.String("post_id", postID))
		return nil, fmt.Errorf("get post %s: %w", postID, err)
	}
	if post == nil {
		return nil, utils.NewError(utils.ErrNotFound, "Post not found")
	}

	resp := response.PostToResponse(post)
	return &resp, nil
}

func (s *postService) CreatePost(ctx context.Context, identity entity.Identity, req *request.CreatePostRequest) (*response.PostResponse, error) {
	if s.repo == nil {
		return nil, storeNotInitialized(s.driver)
	}
	if identity.UID == "" {
		return nil, utils.NewError(utils.ErrUnauthenticated, "No token provided")
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, utils.NewValidationError("Title required", nil)
	}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create post validation failed", zap.Any("errors", errs))
		return nil, utils.NewValidationError("Validation failed", errs)
	}

	post := &entity.Post{
		Title:       title,
		Excerpt:     req.Excerpt,
		Content:     req.Content,
		AuthorUID:   identity.UID,
		AuthorEmail: identity.Email,
	}

	if err := s.repo.Create(ctx, post); err != nil {
		s.log.Error("Failed to create post", zap.Error(err), zap.String("uid", identity.UID))
		return nil, fmt.Errorf("create post: %w", err)
	}

	s.log.Info("Post created",
		zap.String("post_id", post.ID),
		zap.String("uid", identity.UID),
	)

	resp := response.PostToResponse(post)
	return &resp, nil
}
