// Package api serves the projection views over a local HTTP endpoint, for
// callers that prefer polling a socket over linking the library.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/radview/internal/cob"
	"github.com/radview/internal/profile"
	"github.com/radview/internal/service"
	"github.com/radview/internal/view"
)

// Ops is the slice of the service the server exposes.
type Ops interface {
	NID() cob.NodeID
	Project(rid string) (view.Info, error)
	Projects() ([]view.Info, error)
	Patches(rid string) ([]view.Patch, error)
	Patch(rid, patchID string) (view.Patch, error)
	Issues(rid string) ([]view.Issue, error)
	Issue(rid, issueID string) (view.Issue, error)
}

// Server represents the API server
type Server struct {
	echo *echo.Echo
	ops  Ops
	port int
}

// NewServer creates a new API server
func NewServer(ops Ops, port int) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	server := &Server{echo: e, ops: ops, port: port}
	server.setupRoutes()
	return server
}

// setupRoutes configures all API endpoints
func (s *Server) setupRoutes() {
	s.echo.GET("/node", s.getNode)
	s.echo.GET("/projects", s.getProjects)
	s.echo.GET("/projects/:rid", s.getProject)
	s.echo.GET("/projects/:rid/patches", s.getPatches)
	s.echo.GET("/projects/:rid/patches/:id", s.getPatch)
	s.echo.GET("/projects/:rid/issues", s.getIssues)
	s.echo.GET("/projects/:rid/issues/:id", s.getIssue)
}

// Start begins the API server and blocks until interrupted.
func (s *Server) Start() error {
	go func() {
		if err := s.echo.Start(fmt.Sprintf(":%d", s.port)); err != nil && err != http.ErrServerClosed {
			s.echo.Logger.Fatal("shutting down the server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return s.echo.Shutdown(ctx)
}

func (s *Server) getNode(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"nid": string(s.ops.NID())})
}

func (s *Server) getProjects(c echo.Context) error {
	infos, err := s.ops.Projects()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, infos)
}

func (s *Server) getProject(c echo.Context) error {
	info, err := s.ops.Project(c.Param("rid"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, info)
}

func (s *Server) getPatches(c echo.Context) error {
	patches, err := s.ops.Patches(c.Param("rid"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, patches)
}

func (s *Server) getPatch(c echo.Context) error {
	patch, err := s.ops.Patch(c.Param("rid"), c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, patch)
}

func (s *Server) getIssues(c echo.Context) error {
	issues, err := s.ops.Issues(c.Param("rid"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, issues)
}

func (s *Server) getIssue(c echo.Context) error {
	issue, err := s.ops.Issue(c.Param("rid"), c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, issue)
}

// fail maps service errors to responses: not-found is distinguishable,
// hint errors carry their remediation hint, the rest is a plain failure.
func fail(c echo.Context, err error) error {
	if service.IsNotFound(err) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	}
	var hintErr *profile.HintError
	if errors.As(err, &hintErr) {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"error": hintErr.Error(),
			"hint":  hintErr.Hint,
		})
	}
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
}
