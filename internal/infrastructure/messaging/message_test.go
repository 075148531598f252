package messaging

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessage_PayloadRoundTrip(t *testing.T) {
	job := &TranslationJobMessage{
		JobID:     "job-1",
		WorkID:    "work-1",
		ChapterID: "chapter-1",
	}

	msg, err := NewMessage("msg-1", MessageTypeTranslateChapter, job.WorkID, job)
	require.NoError(t, err)
	assert.Equal(t, "msg-1", msg.ID)
	assert.Equal(t, MessageTypeTranslateChapter, msg.Type)
	assert.Equal(t, "work-1", msg.WorkID)
	assert.False(t, msg.CreatedAt.IsZero())

	var decoded TranslationJobMessage
	require.NoError(t, msg.UnmarshalPayload(&decoded))
	assert.Equal(t, *job, decoded)
}

func TestMessage_WireRoundTrip(t *testing.T) {
	msg, err := NewMessage("msg-1", MessageTypeTranslateChapter, "work-1", &TranslationJobMessage{
		JobID:     "job-1",
		WorkID:    "work-1",
		ChapterID: "chapter-1",
	})
	require.NoError(t, err)
	msg.SetMetadata("chapter_id", "chapter-1")

	data, err := json.Marshal(msg)
	require.NoError(t, err)

	var got Message
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, msg.ID, got.ID)
	assert.Equal(t, msg.Type, got.Type)
	assert.Equal(t, "chapter-1", got.GetMetadata("chapter_id"))

	var job TranslationJobMessage
	require.NoError(t, got.UnmarshalPayload(&job))
	assert.Equal(t, "chapter-1", job.ChapterID)
}

func TestMetadata_NilMapSafe(t *testing.T) {
	var msg Message
	assert.Empty(t, msg.GetMetadata("anything"))

	msg.SetMetadata("k", "v")
	assert.Equal(t, "v", msg.GetMetadata("k"))
}

func TestDLQStream(t *testing.T) {
	assert.Equal(t, "dlq:stream:translate:jobs", StreamTranslateJobs.DLQStream())
}
