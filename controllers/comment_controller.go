package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ikapo/CBoard-API/models"
	"github.com/ikapo/CBoard-API/utils"
)

// CommentController serves reply creation.
type CommentController struct {
	store  ContentStore
	images *utils.ImageStore
}

// NewCommentController creates a new CommentController instance.
func NewCommentController(store ContentStore, images *utils.ImageStore) *CommentController {
	return &CommentController{store: store, images: images}
}

type commentForm struct {
	Content string `form:"content" binding:"required"`
	// Pointer so a present board=0 binds; required on a plain uint8 would
	// reject the zero board.
	Board  *uint8 `form:"board" binding:"required"`
	Parent uint64 `form:"parent" binding:"required"`
}

// NewComment handles POST /newcomment: insert a reply under an existing
// thread, bumping it, then redirect to the reply's anchor in the thread.
// A missing parent or any failure redirects home.
func (c *CommentController) NewComment(ctx *gin.Context) {
	var form commentForm
	if err := ctx.ShouldBind(&form); err != nil {
		utils.Sugar.Infof("rejected comment form: %v", err)
		redirectHome(ctx)
		return
	}

	comment := models.Comment{
		Content: utils.Sanitize(form.Content),
		Board:   *form.Board,
		Parent:  form.Parent,
	}

	img, ext := readUpload(ctx, c.images)
	comment.Ext = ext

	id, err := c.store.CreateComment(ctx.Request.Context(), &comment)
	if err != nil {
		if errors.Is(err, models.ErrParentNotFound) {
			utils.Sugar.Infof("comment on missing post %d", form.Parent)
		} else {
			utils.Sugar.Errorf("create comment: %v", err)
		}
		redirectHome(ctx)
		return
	}

	if ext != "" {
		if err := c.images.Save(img, id, ext); err != nil {
			utils.Sugar.Errorf("save image for comment %d: %v", id, err)
		}
	}

	// A reply reorders its board and extends its thread
	utils.InvalidateCache(boardCacheKey(comment.Board), threadCacheKey(comment.Parent))
	ctx.Redirect(http.StatusMovedPermanently, fmt.Sprintf("/post/%d#c%d", comment.Parent, id))
}
