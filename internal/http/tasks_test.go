package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookshelf/internal/tasks"
)

type mockTaskQueue struct {
	enqueued []backlite.Task
	status   backlite.TaskStatus
	err      error
}

func (m *mockTaskQueue) Enqueue(task backlite.Task) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.enqueued = append(m.enqueued, task)
	return "task-1", nil
}

func (m *mockTaskQueue) Status(ctx context.Context, taskID string) (backlite.TaskStatus, error) {
	return m.status, m.err
}

func setupTasksRouter(queue TaskQueue) *gin.Engine {
	controller := NewTasksController(queue, tasks.Config{AuditRetentionDays: 14})
	router := gin.New()
	router.GET("/api/tasks/types", controller.ListTaskTypes)
	router.GET("/api/tasks/:id", controller.GetTaskStatus)
	router.POST("/api/tasks/:type/run", controller.RunTask)
	return router
}

func runTask(router http.Handler, taskType string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/tasks/"+taskType+"/run", nil)
	router.ServeHTTP(w, req)
	return w
}

func TestTasksController_ListTaskTypes(t *testing.T) {
	w := get(setupTasksRouter(&mockTaskQueue{}), "/api/tasks/types")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), tasks.QueueCleanupOrphanAuthors)
	assert.Contains(t, w.Body.String(), tasks.QueueCleanupAuditEvents)
}

func TestTasksController_RunTask(t *testing.T) {
	queue := &mockTaskQueue{}
	router := setupTasksRouter(queue)

	w := runTask(router, tasks.QueueCleanupAuditEvents)

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Contains(t, w.Body.String(), `"task_id":"task-1"`)
	require.Len(t, queue.enqueued, 1)
	assert.Equal(t, tasks.CleanupAuditEventsTask{RetentionDays: 14}, queue.enqueued[0])
}

func TestTasksController_RunTask_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, runTask(setupTasksRouter(&mockTaskQueue{}), "enrich_book").Code)

	failing := &mockTaskQueue{err: errors.New("queue closed")}
	assert.Equal(t, http.StatusInternalServerError, runTask(setupTasksRouter(failing), tasks.QueueCleanupOrphanAuthors).Code)
}

func TestTasksController_GetTaskStatus(t *testing.T) {
	router := setupTasksRouter(&mockTaskQueue{status: backlite.TaskStatusSuccess})

	w := get(router, "/api/tasks/abc")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"abc","status":"success"}`, w.Body.String())
}

func TestTaskStatusToString(t *testing.T) {
	assert.Equal(t, "pending", taskStatusToString(backlite.TaskStatusPending))
	assert.Equal(t, "running", taskStatusToString(backlite.TaskStatusRunning))
	assert.Equal(t, "failure", taskStatusToString(backlite.TaskStatusFailure))
	assert.Equal(t, "not_found", taskStatusToString(backlite.TaskStatusNotFound))
}
