package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freezeClock(t *testing.T, now time.Time) {
	t.Helper()
	prev := Now
	Now = func() time.Time { return now }
	t.Cleanup(func() { Now = prev })
}

func TestStruct_NamesAreLettersOnly(t *testing.T) {
	cases := map[string]bool{
		"":         true,
		"Alice":    true,
		"Zoë":      true,
		"Олена":    true,
		"Alice1":   false,
		"Mary Ann": false,
		"O'Neil":   false,
		"Jean-Luc": false,
		"Bob!":     false,
	}
	for input, want := range cases {
		err := Struct(person{FirstName: input, Username: "user"})
		if want {
			assert.NoError(t, err, input)
			continue
		}
		fieldErrs, ok := As(err)
		require.True(t, ok, input)
		assert.Contains(t, fieldErrs, "first_name", input)
	}
}

func TestDeadlineOK(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	freezeClock(t, now)

	assert.False(t, DeadlineOK(now))
	assert.False(t, DeadlineOK(now.Add(29*time.Minute)))
	assert.True(t, DeadlineOK(now.Add(30*time.Minute)))
	assert.True(t, DeadlineOK(now.Add(45*time.Minute)))
}

type person struct {
	FirstName string `json:"first_name" validate:"omitempty,alphaunicode"`
	LastName  string `json:"last_name" validate:"omitempty,alphaunicode"`
	Username  string `form:"username" validate:"required,username"`
}

func TestStruct_ReportsEveryFailingField(t *testing.T) {
	err := Struct(person{FirstName: "Al1ce", LastName: "B0b", Username: "ok_user"})
	require.Error(t, err)

	fieldErrs, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, []string{"First name must contain only letters."}, fieldErrs["first_name"])
	assert.Equal(t, []string{"Last name must contain only letters."}, fieldErrs["last_name"])
	assert.NotContains(t, fieldErrs, "username")
}

func TestStruct_UsernameRule(t *testing.T) {
	assert.NoError(t, Struct(person{Username: "jane.doe+work@corp"}))

	err := Struct(person{Username: "jane doe"})
	fieldErrs, ok := As(err)
	require.True(t, ok)
	assert.Contains(t, fieldErrs, "username")
}

type schedule struct {
	Deadline time.Time `json:"deadline" validate:"deadline_lead"`
}

func TestStruct_DeadlineLead(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	freezeClock(t, now)

	err := Struct(schedule{Deadline: now.Add(10 * time.Minute)})
	fieldErrs, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, []string{"Deadline must be at least 30 minutes from now."}, fieldErrs["deadline"])

	assert.NoError(t, Struct(schedule{Deadline: now.Add(time.Hour)}))
}

func TestErrors_ErrAndMerge(t *testing.T) {
	errs := Errors{}
	assert.NoError(t, errs.Err())

	errs.Add("name", "This field is required.")
	errs.Merge(Errors{"name": {"Too long."}, "email": {"Enter a valid email address."}})

	require.Error(t, errs.Err())
	assert.Equal(t, []string{"This field is required.", "Too long."}, errs["name"])
	assert.Equal(t, "email: Enter a valid email address.; name: This field is required. Too long.", errs.Error())
}

type assignment struct {
	ProjectID uint64 `json:"project_id" validate:"required"`
}

func TestStruct_ForeignKeysUseFormName(t *testing.T) {
	fieldErrs, ok := As(Struct(assignment{}))
	require.True(t, ok)
	assert.Equal(t, []string{"This field is required."}, fieldErrs["project"])
}
