package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/mansoorceksport/totality/internal/domain"
	"github.com/mansoorceksport/totality/internal/service"
	"github.com/mansoorceksport/totality/internal/telemetry"
)

// UserIDHeader carries the id of the user authoring custom exercises.
const UserIDHeader = "X-User-ID"

type ExerciseHandler struct {
	exerciseService *service.ExerciseService
}

func NewExerciseHandler(exerciseService *service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// Register mounts the exercise library routes on r.
func (h *ExerciseHandler) Register(r fiber.Router) {
	r.Get("/taxonomy", h.GetTaxonomy)

	exercises := r.Group("/exercises")
	exercises.Get("/", h.ListExercises)
	exercises.Post("/", h.CreateExercise)
	exercises.Post("/parse-title", h.ParseTitle)
	exercises.Get("/:id", h.GetExercise)
	exercises.Delete("/:id", h.DeleteExercise)
	exercises.Get("/:id/relations", h.ListRelations)
	exercises.Post("/:id/relations", h.CreateRelation)
	exercises.Post("/:id/sets", h.LogSet)

	r.Get("/workouts/:id/sets", h.ListWorkoutSets)
}

// ListExercises GET /v1/exercises
// Query: name, category, implement, user_created (true/false)
func (h *ExerciseHandler) ListExercises(c *fiber.Ctx) error {
	filter := domain.ExerciseFilter{
		Name:      strings.TrimSpace(c.Query("name")),
		Category:  domain.ExerciseCategory(c.Query("category")),
		Implement: domain.ImplementType(c.Query("implement")),
	}
	if v := c.Query("user_created"); v != "" {
		userCreated := c.QueryBool("user_created")
		filter.UserCreated = &userCreated
	}

	return c.JSON(h.exerciseService.List(c.UserContext(), filter))
}

func (h *ExerciseHandler) GetExercise(c *fiber.Ctx) error {
	telemetry.SetSpanAttribute(c, "exercise.id", c.Params("id"))
	ex, err := h.exerciseService.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(ex)
}

type createExerciseRequest struct {
	Title string `json:"title"`
	domain.ExerciseDefinition
}

// CreateExercise POST /v1/exercises
// The title is parsed for hints; any definition field in the body wins.
func (h *ExerciseHandler) CreateExercise(c *fiber.Ctx) error {
	var req createExerciseRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid body")
	}
	if strings.TrimSpace(req.Title) == "" && strings.TrimSpace(req.Name) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "title or name is required")
	}

	ex, err := h.exerciseService.CreateCustomExercise(c.UserContext(), c.Get(UserIDHeader), req.Title, req.ExerciseDefinition)
	if err != nil {
		return err
	}
	telemetry.SetSpanAttribute(c, "exercise.id", ex.ID)
	return c.Status(fiber.StatusCreated).JSON(ex)
}

func (h *ExerciseHandler) DeleteExercise(c *fiber.Ctx) error {
	telemetry.SetSpanAttribute(c, "exercise.id", c.Params("id"))
	if err := h.exerciseService.DeleteExercise(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "deleted"})
}

// ParseTitle POST /v1/exercises/parse-title
func (h *ExerciseHandler) ParseTitle(c *fiber.Ctx) error {
	var req struct {
		Title string `json:"title"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid body")
	}
	return c.JSON(h.exerciseService.ParseTitle(req.Title))
}

func (h *ExerciseHandler) ListRelations(c *fiber.Ctx) error {
	rels, err := h.exerciseService.ListRelations(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(rels)
}

// CreateRelation POST /v1/exercises/:id/relations
func (h *ExerciseHandler) CreateRelation(c *fiber.Ctx) error {
	var req struct {
		ToExerciseID string                      `json:"to_exercise_id"`
		Type         domain.ExerciseRelationType `json:"type"`
		Similarity   float64                     `json:"similarity"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid body")
	}

	rel, err := h.exerciseService.CreateRelation(c.UserContext(), c.Params("id"), req.ToExerciseID, req.Type, req.Similarity)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(rel)
}

// LogSet POST /v1/exercises/:id/sets
// The body is decoded over a fresh straight set; id and exercise_id in the
// body are ignored.
func (h *ExerciseHandler) LogSet(c *fiber.Ctx) error {
	rec := domain.NewSetRecord("", c.Params("id"), 0, "", domain.SetStraight)
	id, exerciseID := rec.ID, rec.ExerciseID
	if err := c.BodyParser(rec); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid body")
	}
	rec.ID, rec.ExerciseID = id, exerciseID

	if err := h.exerciseService.LogSet(c.UserContext(), rec); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(rec)
}

func (h *ExerciseHandler) ListWorkoutSets(c *fiber.Ctx) error {
	sets, err := h.exerciseService.ListWorkoutSets(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(sets)
}

// GetTaxonomy GET /v1/taxonomy lists the valid tokens of every field.
func (h *ExerciseHandler) GetTaxonomy(c *fiber.Ctx) error {
	return c.JSON(domain.Taxonomy())
}
