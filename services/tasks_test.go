package services

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTaskTestApp(svc *TaskService, userID string) *fiber.App {
	app := fiber.New()
	app.Post("/api/tasks/:id/complete", func(c *fiber.Ctx) error {
		c.Locals("user_id", userID)
		return svc.CompleteTask(c)
	})
	return app
}

func TestCompleteTaskRepeatSkipsProofUpload(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	db := setupTestDB(t)
	rewards := NewRewardService(db, testConfig())
	svc := NewTaskService(db, rewards)
	user := createTestUser(t, db)
	task := createTestTask(t, db, "Morning Aarti", 20)
	app := newTaskTestApp(svc, user.ID)

	_, err = rewards.CompleteTask(task.ID, user.ID, "done")
	require.NoError(t, err)

	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)
	part, err := form.CreateFormFile("proof", "proof.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("image bytes"))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	req := httptest.NewRequest("POST", "/api/tasks/"+task.ID+"/complete", body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// the declined completion must not leave a proof file behind
	entries, err := os.ReadDir(filepath.Join("uploads", "proofs"))
	if err == nil {
		assert.Empty(t, entries)
	} else {
		assert.True(t, os.IsNotExist(err))
	}
}
