package task

import (
	"testing"
	"time"

	"taskhub/auth"
	projectRepo "taskhub/database/repository/project"
	taskRepo "taskhub/database/repository/task"
	"taskhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memProjectRepo struct {
	nextID int64
	items  map[int64]*models.Project
}

func newMemProjectRepo() *memProjectRepo {
	return &memProjectRepo{items: map[int64]*models.Project{}}
}

func (m *memProjectRepo) Create(p *models.Project) error {
	m.nextID++
	p.ID = m.nextID
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Status == "" {
		p.Status = models.ProjectPlanning
	}
	copied := *p
	m.items[p.ID] = &copied
	return nil
}

func (m *memProjectRepo) GetByID(id int64) (*models.Project, error) {
	p, ok := m.items[id]
	if !ok {
		return nil, projectRepo.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (m *memProjectRepo) Update(p *models.Project) error {
	if _, ok := m.items[p.ID]; !ok {
		return projectRepo.ErrNotFound
	}
	copied := *p
	m.items[p.ID] = &copied
	return nil
}

func (m *memProjectRepo) Delete(id int64) error {
	if _, ok := m.items[id]; !ok {
		return projectRepo.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *memProjectRepo) List() ([]models.Project, error) {
	var out []models.Project
	for _, p := range m.items {
		out = append(out, *p)
	}
	return out, nil
}

type memTaskRepo struct {
	nextID int64
	items  map[int64]*models.Task
}

func newMemTaskRepo() *memTaskRepo {
	return &memTaskRepo{items: map[int64]*models.Task{}}
}

func (m *memTaskRepo) Create(t *models.Task) error {
	m.nextID++
	t.ID = m.nextID
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now
	if t.Status == "" {
		t.Status = models.TaskTodo
	}
	if t.Priority == "" {
		t.Priority = models.PriorityMedium
	}
	copied := *t
	m.items[t.ID] = &copied
	return nil
}

func (m *memTaskRepo) GetByID(id int64) (*models.Task, error) {
	t, ok := m.items[id]
	if !ok {
		return nil, taskRepo.ErrNotFound
	}
	copied := *t
	return &copied, nil
}

func (m *memTaskRepo) Update(t *models.Task) error {
	if _, ok := m.items[t.ID]; !ok {
		return taskRepo.ErrNotFound
	}
	copied := *t
	m.items[t.ID] = &copied
	return nil
}

func (m *memTaskRepo) Delete(id int64) error {
	if _, ok := m.items[id]; !ok {
		return taskRepo.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *memTaskRepo) List(filter models.TaskFilter) ([]models.Task, error) {
	var out []models.Task
	for _, t := range m.items {
		if filter.ProjectID != 0 && t.ProjectID != filter.ProjectID {
			continue
		}
		if filter.AssigneeID != 0 && (t.AssigneeID == nil || *t.AssigneeID != filter.AssigneeID) {
			continue
		}
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func (m *memTaskRepo) CountByStatus(projectID int64) (map[string]int64, error) {
	counts := map[string]int64{}
	for _, t := range m.items {
		if t.ProjectID == projectID {
			counts[t.Status]++
		}
	}
	return counts, nil
}

type memCommentRepo struct {
	nextID int64
	items  []*models.Comment
}

func (m *memCommentRepo) Create(c *models.Comment) error {
	m.nextID++
	c.ID = m.nextID
	c.CreatedAt = time.Now()
	copied := *c
	m.items = append(m.items, &copied)
	return nil
}

func (m *memCommentRepo) ListByTask(taskID int64) ([]models.Comment, error) {
	var out []models.Comment
	for _, c := range m.items {
		if c.TaskID == taskID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *memCommentRepo) CountByTask(taskID int64) (int64, error) {
	var count int64
	for _, c := range m.items {
		if c.TaskID == taskID {
			count++
		}
	}
	return count, nil
}

// recordingDispatcher captures dispatched events for assertions.
type recordingDispatcher struct {
	events []models.EventPayload
	tokens []string
}

func (d *recordingDispatcher) Dispatch(event models.EventPayload, rawToken string) {
	d.events = append(d.events, event)
	d.tokens = append(d.tokens, rawToken)
}

func newTestTaskService() (*DefaultTaskService, *recordingDispatcher) {
	dispatcher := &recordingDispatcher{}
	svc := &DefaultTaskService{
		Projects:   newMemProjectRepo(),
		Tasks:      newMemTaskRepo(),
		Comments:   &memCommentRepo{},
		Dispatcher: dispatcher,
	}
	return svc, dispatcher
}

var caller = auth.Principal{ID: 11, Name: "alice", Authenticated: true}

func mustCreateProject(t *testing.T, svc *DefaultTaskService) *models.Project {
	t.Helper()
	project, err := svc.CreateProject(models.Project{Name: "Apollo"}, caller)
	require.NoError(t, err)
	return project
}

func TestCreateProjectSetsOwner(t *testing.T) {
	svc, _ := newTestTaskService()

	project := mustCreateProject(t, svc)
	assert.Equal(t, caller.ID, project.OwnerID)
	assert.Equal(t, models.ProjectPlanning, project.Status)
}

func TestCreateTaskDispatchesTaskCreated(t *testing.T) {
	svc, dispatcher := newTestTaskService()
	project := mustCreateProject(t, svc)

	created, err := svc.CreateTask(models.Task{
		ProjectID: project.ID,
		Title:     "Write report",
	}, caller, "raw-token")
	require.NoError(t, err)
	assert.Equal(t, caller.ID, created.CreatorID)

	require.Len(t, dispatcher.events, 1)
	event := dispatcher.events[0]
	assert.Equal(t, models.EventTaskCreated, event.EventType)
	assert.Equal(t, created.ID, event.TaskID)
	assert.Equal(t, "Write report", event.Title)
	assert.Equal(t, project.ID, event.ProjectID)
	assert.Equal(t, caller.ID, event.CreatorID)
	assert.Equal(t, "raw-token", dispatcher.tokens[0])
}

func TestUpdateTaskDispatchesOnStatusChange(t *testing.T) {
	svc, dispatcher := newTestTaskService()
	project := mustCreateProject(t, svc)
	created, err := svc.CreateTask(models.Task{ProjectID: project.ID, Title: "X"}, caller, "tok")
	require.NoError(t, err)

	status := models.TaskDone
	updated, err := svc.UpdateTask(created.ID, TaskUpdate{Status: &status}, caller, "tok")
	require.NoError(t, err)
	assert.Equal(t, models.TaskDone, updated.Status)

	require.Len(t, dispatcher.events, 2)
	event := dispatcher.events[1]
	assert.Equal(t, models.EventTaskStatusChanged, event.EventType)
	assert.Equal(t, models.TaskTodo, event.OldStatus)
	assert.Equal(t, models.TaskDone, event.NewStatus)
	assert.Equal(t, "X", event.Title)
}

func TestUpdateTaskWithoutStatusChangeDispatchesNothing(t *testing.T) {
	svc, dispatcher := newTestTaskService()
	project := mustCreateProject(t, svc)
	created, err := svc.CreateTask(models.Task{ProjectID: project.ID, Title: "X"}, caller, "tok")
	require.NoError(t, err)

	desc := "updated description"
	_, err = svc.UpdateTask(created.ID, TaskUpdate{Description: &desc}, caller, "tok")
	require.NoError(t, err)

	// Only the creation event; a non-status update is not a qualifying mutation.
	assert.Len(t, dispatcher.events, 1)

	// Setting the same status again is not a change either.
	status := models.TaskTodo
	_, err = svc.UpdateTask(created.ID, TaskUpdate{Status: &status}, caller, "tok")
	require.NoError(t, err)
	assert.Len(t, dispatcher.events, 1)
}

func TestCreateTaskValidation(t *testing.T) {
	svc, dispatcher := newTestTaskService()
	project := mustCreateProject(t, svc)

	_, err := svc.CreateTask(models.Task{ProjectID: project.ID}, caller, "tok")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateTask(models.Task{Title: "no project"}, caller, "tok")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateTask(models.Task{ProjectID: project.ID, Title: "bad", Status: "sleeping"}, caller, "tok")
	assert.ErrorIs(t, err, ErrValidation)

	// Nothing qualifying happened, so nothing was dispatched.
	assert.Empty(t, dispatcher.events)
}

func TestProjectStatistics(t *testing.T) {
	svc, _ := newTestTaskService()
	project := mustCreateProject(t, svc)

	_, err := svc.CreateTask(models.Task{ProjectID: project.ID, Title: "a"}, caller, "tok")
	require.NoError(t, err)
	created, err := svc.CreateTask(models.Task{ProjectID: project.ID, Title: "b"}, caller, "tok")
	require.NoError(t, err)
	status := models.TaskDone
	_, err = svc.UpdateTask(created.ID, TaskUpdate{Status: &status}, caller, "tok")
	require.NoError(t, err)

	stats, err := svc.ProjectStatistics(project.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Total)
	assert.Equal(t, int64(1), stats.Todo)
	assert.Equal(t, int64(1), stats.Done)
}

func TestAddCommentSetsAuthor(t *testing.T) {
	svc, _ := newTestTaskService()
	project := mustCreateProject(t, svc)
	created, err := svc.CreateTask(models.Task{ProjectID: project.ID, Title: "X"}, caller, "tok")
	require.NoError(t, err)

	comment, err := svc.AddComment(created.ID, "looks good", caller)
	require.NoError(t, err)
	assert.Equal(t, caller.ID, comment.AuthorID)

	comments, err := svc.ListComments(created.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "looks good", comments[0].Text)
}
