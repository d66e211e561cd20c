package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStepFontSize(t *testing.T) {
	cases := []struct {
		current, action, want string
	}{
		{"medium", "increase", "large"},
		{"large", "increase", "x-large"},
		{"x-large", "increase", "x-large"},
		{"medium", "decrease", "small"},
		{"small", "decrease", "small"},
		{"x-large", "reset", "medium"},
		{"bogus", "increase", "large"},
	}
	for _, tc := range cases {
		got, err := StepFontSize(tc.current, tc.action)
		require.NoError(t, err)
		require.Equal(t, tc.want, got, "%s %s", tc.current, tc.action)
	}

	_, err := StepFontSize("medium", "explode")
	require.ErrorIs(t, err, ErrInvalidFontSize)
}

func TestPreferenceService(t *testing.T) {
	store := newMemoryState()
	svc := NewPreferenceService(store, LocalePT)
	ctx := context.Background()

	pref, err := svc.Get(ctx, "c1")
	require.NoError(t, err)
	require.Equal(t, "pt", pref.Locale)
	require.Equal(t, "medium", pref.FontSize)

	pref, err = svc.Update(ctx, "c1", "jp", "")
	require.NoError(t, err)
	require.Equal(t, "jp", pref.Locale)
	require.Equal(t, "medium", store.prefs["c1"].FontSize)

	pref, err = svc.StepFontSize(ctx, "c1", "increase")
	require.NoError(t, err)
	require.Equal(t, "large", pref.FontSize)
	require.Equal(t, "jp", pref.Locale)

	pref, err = svc.ToggleLocale(ctx, "c1")
	require.NoError(t, err)
	require.Equal(t, "pt", pref.Locale)

	_, err = svc.Update(ctx, "c1", "en", "")
	require.ErrorIs(t, err, ErrInvalidLocale)
	_, err = svc.Update(ctx, "c1", "", "huge")
	require.ErrorIs(t, err, ErrInvalidFontSize)
	require.Equal(t, "large", store.prefs["c1"].FontSize)
}
