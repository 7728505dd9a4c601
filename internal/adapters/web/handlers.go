package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"codeplan/internal/application"
	"codeplan/internal/application/commands"
	"codeplan/internal/domain"
	"codeplan/internal/ports"
)

type loadFailure struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (s *Server) handleBacklog(c *gin.Context) {
	result, err := commands.NewLoadBacklogCommand(s.repo, s.dir).Execute(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"items":    nonNil(result.Items),
		"config":   result.Config,
		"failures": failures(result.Failures),
	})
}

func (s *Server) handleArchived(c *gin.Context) {
	result, err := commands.NewLoadArchivedCommand(s.repo, s.dir).Execute(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"items":    nonNil(result.Items),
		"paths":    result.Paths,
		"failures": failures(result.Failures),
	})
}

func (s *Server) handleContext(c *gin.Context) {
	includeBacklog := true
	if v := c.Query("includeBacklog"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			s.fail(c, &application.ValidationError{Field: "includeBacklog", Message: "expected true or false"})
			return
		}
		includeBacklog = parsed
	}

	cmd := commands.NewGetContextCommand(s.repo, s.dir, includeBacklog, c.QueryArray("keyword"))
	result, err := cmd.Execute(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"context": result.Context,
		"summary": result.Message,
	})
}

func (s *Server) handleSearch(c *gin.Context) {
	if s.index == nil {
		c.JSON(http.StatusNotFound, application.Failed(errors.New("search is not enabled")))
		return
	}

	query := c.Query("q")
	if query == "" {
		s.fail(c, &application.ValidationError{Field: "q", Message: "query parameter required"})
		return
	}

	results, err := commands.NewSearchCommand(s.repo, s.index, s.dir, query).Execute(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}

	hits := make([]gin.H, 0, len(results))
	for _, r := range results {
		hits = append(hits, gin.H{
			"id":       r.ID,
			"title":    r.Title,
			"status":   r.Status,
			"path":     r.Path,
			"archived": r.Archived,
			"matched":  r.MatchedText,
			"score":    r.Score,
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"query":   query,
		"results": hits,
		"count":   len(hits),
	})
}

func (s *Server) handleItem(c *gin.Context) {
	result, err := commands.NewGetItemCommand(s.repo, s.dir, c.Param("id")).Execute(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"item":     result.Item,
		"path":     result.Path,
		"archived": result.Archived,
	})
}

func (s *Server) handleCreate(c *gin.Context) {
	var draft domain.Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, application.Failed(err))
		return
	}

	result, err := commands.NewCreateItemCommand(s.repo, s.dir, draft).Execute(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"item":    result.Item,
		"message": result.Message,
	})
}

func (s *Server) handleUpdate(c *gin.Context) {
	var patch domain.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, application.Failed(err))
		return
	}

	result, err := commands.NewUpdateItemCommand(s.repo, s.dir, c.Param("id"), patch).Execute(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"item":    result.Item,
		"message": result.Message,
	})
}

func (s *Server) handleStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, application.Failed(err))
		return
	}

	result, err := commands.NewUpdateStatusCommand(s.repo, s.dir, c.Param("id"), req.Status).Execute(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"item":      result.Item,
		"oldStatus": result.OldStatus,
		"message":   result.Message,
	})
}

func (s *Server) handleArchive(c *gin.Context) {
	result, err := commands.NewArchiveItemCommand(s.repo, s.dir, c.Param("id")).Execute(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"path":    result.Path,
		"message": result.Message,
	})
}

func (s *Server) handleArchiveDone(c *gin.Context) {
	result, err := commands.NewArchiveDoneCommand(s.repo, s.dir).Execute(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}

	archived := make([]string, 0, len(result.Archived))
	for _, a := range result.Archived {
		archived = append(archived, a.ItemID)
	}
	errs := make([]string, 0, len(result.Errors))
	for _, e := range result.Errors {
		errs = append(errs, e.Error())
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  len(errs) == 0,
		"archived": archived,
		"errors":   errs,
		"message":  result.Message,
	})
}

func (s *Server) handleRestore(c *gin.Context) {
	result, err := commands.NewRestoreItemCommand(s.repo, s.dir, c.Param("id")).Execute(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"path":    result.Path,
		"message": result.Message,
	})
}

func (s *Server) handleDelete(c *gin.Context) {
	result, err := commands.NewDeleteItemCommand(s.repo, s.dir, c.Param("id")).Execute(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": result.Message,
	})
}

// fail writes err as an Outcome with the status its kind maps to
func (s *Server) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch application.Classify(err) {
	case application.KindNotFound:
		status = http.StatusNotFound
	case application.KindInvalid:
		status = http.StatusUnprocessableEntity
	default:
		s.logger.Error("request failed", "path", c.Request.URL.Path, "err", err)
	}
	c.JSON(status, application.Failed(err))
}

func failures(fs []ports.LoadFailure) []loadFailure {
	out := make([]loadFailure, 0, len(fs))
	for _, f := range fs {
		out = append(out, loadFailure{Path: f.Path, Error: f.Err.Error()})
	}
	return out
}

func nonNil(items []domain.Item) []domain.Item {
	if items == nil {
		return []domain.Item{}
	}
	return items
}
