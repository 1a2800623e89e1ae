package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExamRequestID_RespectsLengthCap(t *testing.T) {
	id := ExamRequestID("2025-2", "EVAL-ORDINARY", "MAT-ALGORITHMS-101")
	assert.LessOrEqual(t, len(id), idByteCap)
	assert.Regexp(t, `^EX`, id)
}

func TestExamGroupID_IsDeterministicGivenSameInputs(t *testing.T) {
	a := ExamGroupID("REQ1", "GRP1")
	b := ExamGroupID("REQ1", "GRP1")
	assert.Equal(t, a, b, "exam group ids carry no random component and must be stable")
	assert.Len(t, a, 20)
	assert.Regexp(t, `^EG`, a)
}

func TestRoomAssignmentID_VariesAcrossCalls(t *testing.T) {
	a := RoomAssignmentID("REQ1", "ROOM1")
	b := RoomAssignmentID("REQ1", "ROOM1")
	assert.NotEqual(t, a, b, "the embedded uuid component must isolate randomness from ordering")
	assert.Len(t, a, 20)
	assert.Regexp(t, `^AA`, a)
}

func TestJuryAssignmentID_Prefix(t *testing.T) {
	id := JuryAssignmentID("REQ1", "TEACH1")
	assert.Regexp(t, `^ES`, id)
	assert.Len(t, id, 20)
}
