package controllers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ikapo/CBoard-API/models"
	"github.com/ikapo/CBoard-API/utils"
)

// ContentStore is the persistence surface the controllers depend on.
type ContentStore interface {
	CreatePost(ctx context.Context, p *models.Post) (uint64, error)
	CreateComment(ctx context.Context, c *models.Comment) (uint64, error)
	PostByID(ctx context.Context, id uint64) (*models.Post, error)
	Comments(ctx context.Context, parent uint64) ([]models.Comment, error)
	BoardPosts(ctx context.Context, board uint8) ([]models.Post, error)
}

// PostController serves thread creation and the read endpoints.
type PostController struct {
	store  ContentStore
	images *utils.ImageStore
}

// NewPostController creates a new PostController instance.
func NewPostController(store ContentStore, images *utils.ImageStore) *PostController {
	return &PostController{store: store, images: images}
}

type postForm struct {
	Title   string `form:"title" binding:"required"`
	Content string `form:"content" binding:"required"`
	// Pointer so a present board=0 binds; required on a plain uint8 would
	// reject the zero board.
	Board *uint8 `form:"board" binding:"required"`
}

// NewPost handles POST /newpost: create a thread from a multipart form with
// an optional image and redirect to the new thread. Any failure redirects
// home instead of surfacing an error page.
func (p *PostController) NewPost(ctx *gin.Context) {
	var form postForm
	if err := ctx.ShouldBind(&form); err != nil {
		utils.Sugar.Infof("rejected post form: %v", err)
		redirectHome(ctx)
		return
	}

	post := models.Post{
		Title:   utils.Sanitize(form.Title),
		Content: utils.Sanitize(form.Content),
		Board:   *form.Board,
	}

	img, ext := readUpload(ctx, p.images)
	post.Ext = ext

	id, err := p.store.CreatePost(ctx.Request.Context(), &post)
	if err != nil {
		utils.Sugar.Errorf("create post: %v", err)
		redirectHome(ctx)
		return
	}

	if ext != "" {
		if err := p.images.Save(img, id, ext); err != nil {
			utils.Sugar.Errorf("save image for post %d: %v", id, err)
		}
	}

	utils.InvalidateCache(boardCacheKey(post.Board))
	ctx.Redirect(http.StatusMovedPermanently, fmt.Sprintf("/post/%d", id))
}

// GetBoard handles GET /board/:num, returning the most recently bumped
// threads of one board as a JSON array.
func (p *PostController) GetBoard(ctx *gin.Context) {
	num, err := strconv.ParseUint(ctx.Param("num"), 10, 8)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40010, "invalid board number")
		return
	}
	board := uint8(num)

	key := boardCacheKey(board)
	if b, ok := utils.CacheGetBytes(key); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	posts, err := p.store.BoardPosts(ctx.Request.Context(), board)
	if err != nil {
		// Reads degrade to an empty listing; the failure stays
		// distinguishable at the store layer and in the logs.
		utils.Sugar.Errorf("list board %d: %v", board, err)
		ctx.JSON(http.StatusOK, []models.Post{})
		return
	}

	utils.CacheSetJSON(key, posts)
	ctx.JSON(http.StatusOK, posts)
}

// GetPost handles GET /post/:post_id, returning the thread and its replies
// in chronological order. Unknown ids yield empty placeholders, not an
// error status.
func (p *PostController) GetPost(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("post_id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusOK, emptyThread())
		return
	}

	key := threadCacheKey(id)
	if b, ok := utils.CacheGetBytes(key); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	post, err := p.store.PostByID(ctx.Request.Context(), id)
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			utils.Sugar.Errorf("load post %d: %v", id, err)
		}
		ctx.JSON(http.StatusOK, emptyThread())
		return
	}

	comments, err := p.store.Comments(ctx.Request.Context(), id)
	if err != nil {
		utils.Sugar.Errorf("load comments for post %d: %v", id, err)
		comments = []models.Comment{}
	}

	payload := gin.H{"post": post, "comments": comments}
	utils.CacheSetJSON(key, payload)
	ctx.JSON(http.StatusOK, payload)
}

// readUpload pulls the optional image out of the multipart form. A missing
// file, an unlisted extension or bytes that do not sniff as an image all
// yield no extension; the content item is still persisted without an image.
func readUpload(ctx *gin.Context, images *utils.ImageStore) ([]byte, string) {
	header, err := ctx.FormFile("img")
	if err != nil || header.Filename == "" {
		return nil, ""
	}

	f, err := header.Open()
	if err != nil {
		utils.Sugar.Warnf("open upload %s: %v", header.Filename, err)
		return nil, ""
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		utils.Sugar.Warnf("read upload %s: %v", header.Filename, err)
		return nil, ""
	}

	ext, ok := images.Accept(data, header.Filename)
	if !ok {
		utils.Sugar.Infof("rejected upload %q", header.Filename)
		return nil, ""
	}
	return data, ext
}

func redirectHome(ctx *gin.Context) {
	ctx.Redirect(http.StatusMovedPermanently, "/")
}

func emptyThread() gin.H {
	return gin.H{"post": gin.H{}, "comments": []models.Comment{}}
}

func boardCacheKey(board uint8) string {
	return fmt.Sprintf("cache:board:%d", board)
}

func threadCacheKey(id uint64) string {
	return fmt.Sprintf("cache:thread:%d", id)
}
