package schema

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"projectdesk/internal/model"
)

func bind(t *testing.T, body string, obj any) error {
	t.Helper()
	return binding.JSON.BindBody([]byte(body), obj)
}

func TestDate_RoundTrip(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2024-01-31"`), &d))
	assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), d.Time())

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-01-31"`, string(out))
}

func TestDate_RejectsBadInput(t *testing.T) {
	var d Date
	for _, in := range []string{`"2024-13-01"`, `"01/02/2024"`, `20240101`, `"2024-01-01T10:00:00Z"`} {
		err := json.Unmarshal([]byte(in), &d)
		var dateErr *DateError
		assert.ErrorAs(t, err, &dateErr, in)
	}
}

func TestNewDate_DropsClock(t *testing.T) {
	d := NewDate(time.Date(2024, 5, 6, 23, 59, 0, 0, time.UTC))
	assert.Equal(t, "2024-05-06", d.String())
}

func TestProjectPayload_Valid(t *testing.T) {
	var p ProjectPayload
	err := bind(t, `{"name":"X","description":"D","init_date":"2024-01-01","finish_date":"2024-02-01"}`, &p)
	require.NoError(t, err)

	rec := p.Record()
	assert.Equal(t, "X", rec.Name)
	assert.Equal(t, "D", rec.Description)
	assert.Equal(t, "2024-02-01", NewDate(rec.FinishDate).String())
}

func TestProjectPayload_Rejects(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"missing name", `{"description":"D","init_date":"2024-01-01","finish_date":"2024-02-01"}`, "name is required"},
		{"null date", `{"name":"X","description":"D","init_date":null,"finish_date":"2024-02-01"}`, "init_date is required"},
		{"too long", `{"name":"` + strings.Repeat("a", 51) + `","description":"D","init_date":"2024-01-01","finish_date":"2024-02-01"}`, "name must be at most 50 characters"},
		{"bad date", `{"name":"X","description":"D","init_date":"yesterday","finish_date":"2024-02-01"}`, `invalid date "yesterday", expected YYYY-MM-DD`},
		{"wrong type", `{"name":5,"description":"D","init_date":"2024-01-01","finish_date":"2024-02-01"}`, "name must be of type string"},
		{"syntax", `{"name":`, "malformed JSON body"},
		{"not an object", `[1,2]`, "request body must be a JSON object, got array"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var p ProjectPayload
			err := bind(t, tc.body, &p)
			require.Error(t, err)
			assert.Equal(t, tc.want, DescribeBindError(err))
		})
	}
}

func TestProjectPayload_FiftyRunesAllowed(t *testing.T) {
	var p ProjectPayload
	name := strings.Repeat("ñ", 50)
	err := bind(t, `{"name":"`+name+`","description":"","init_date":"2024-01-01","finish_date":"2024-02-01"}`, &p)
	require.NoError(t, err)
	assert.Equal(t, "", *p.Description)
}

func TestEmployeePayload_RequiresAllFields(t *testing.T) {
	var p EmployeePayload
	err := bind(t, `{"name":"Ana","email":"ana@example.com","phone":"555"}`, &p)
	require.Error(t, err)
	assert.Equal(t, "post is required", DescribeBindError(err))
}

func TestEmployeePatch_Apply(t *testing.T) {
	var p EmployeePatch
	require.NoError(t, bind(t, `{"post":"Lead"}`, &p))

	e := model.Employee{ID: 3, Name: "Ana", Email: "ana@example.com", Phone: "555", Post: "Dev"}
	p.Apply(&e)

	assert.Equal(t, model.Employee{ID: 3, Name: "Ana", Email: "ana@example.com", Phone: "555", Post: "Lead"}, e)
}

func TestEmployeePatch_LengthStillChecked(t *testing.T) {
	var p EmployeePatch
	err := bind(t, `{"email":"`+strings.Repeat("e", 60)+`"}`, &p)
	require.Error(t, err)
	assert.Equal(t, "email must be at most 50 characters", DescribeBindError(err))
}

func TestTaskPayload_StatusDefaultsFalse(t *testing.T) {
	var p TaskPayload
	err := bind(t, `{"project_id":1,"employee_id":2,"title":"T","description":"D","deadline":"2024-03-01"}`, &p)
	require.NoError(t, err)

	rec := p.Record()
	assert.False(t, rec.Status)
	assert.Equal(t, 1, rec.ProjectID)
	assert.Equal(t, 2, rec.EmployeeID)
}

func TestTaskPayload_Rejects(t *testing.T) {
	var p TaskPayload
	err := bind(t, `{"project_id":"one","employee_id":2,"title":"T","description":"D","deadline":"2024-03-01"}`, &p)
	require.Error(t, err)
	assert.Equal(t, "project_id must be of type int32", DescribeBindError(err))

	p = TaskPayload{}
	err = bind(t, `{"project_id":1,"employee_id":3000000000,"title":"T","description":"D","deadline":"2024-03-01"}`, &p)
	require.Error(t, err)
	assert.Equal(t, "employee_id must be of type int32", DescribeBindError(err))

	p = TaskPayload{}
	err = bind(t, `{"project_id":1,"title":"T","description":"D","deadline":"2024-03-01"}`, &p)
	require.Error(t, err)
	assert.Equal(t, "employee_id is required", DescribeBindError(err))
}

func TestResponses_Lists(t *testing.T) {
	assert.NotNil(t, NewProjectList(nil))
	assert.NotNil(t, NewEmployeeList(nil))
	assert.NotNil(t, NewTaskList(nil))

	tasks := NewTaskList([]model.Task{{ID: 1, Title: "a", Status: true}, {ID: 2, Title: "b"}})
	require.Len(t, tasks, 2)
	assert.Equal(t, 1, tasks[0].ID)
	assert.True(t, tasks[0].Status)
	assert.Equal(t, "b", tasks[1].Title)
}
