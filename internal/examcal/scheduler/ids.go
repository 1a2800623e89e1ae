package scheduler

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const idByteCap = 20

func compact(s string) string {
	return strings.ReplaceAll(s, "-", "")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// newUUID is the package's one source of randomness, isolated from every
// ordering decision per §5's determinism-up-to-identifiers law.
func newUUID() string {
	return uuid.NewString()
}

// ExamRequestID synthesizes the request id per §4.8: "EX" + compacted
// parents + a 7-char uppercase MD5 fragment of the parents plus a random
// component, the whole thing capped at 20 bytes.
func ExamRequestID(periodID, evaluationID, courseID string) string {
	unique := fmt.Sprintf("%s-%s-%s-%s", periodID, evaluationID, courseID, newUUID())
	sum := md5.Sum([]byte(unique))
	hash := strings.ToUpper(hex.EncodeToString(sum[:]))[:7]
	raw := "EX" + compact(periodID) + compact(evaluationID) + compact(courseID) + hash
	return truncate(raw, idByteCap)
}

// ApplicationWindowID synthesizes "WIN" + a fresh uuid, truncated to the
// same byte cap as every other scheduler-owned id.
func ApplicationWindowID() string {
	return truncate("WIN"+compact(newUUID()), idByteCap)
}

// ExamGroupID synthesizes "EG" + 18 uppercase hex chars of MD5(requestId|groupId).
func ExamGroupID(requestID, groupID string) string {
	return hashedID("EG", requestID, groupID)
}

// RoomAssignmentID synthesizes "AA" + 18 uppercase hex chars of
// MD5(requestId|roomId|uuid), the random component keeping regenerated
// calendars from colliding on identical inputs.
func RoomAssignmentID(requestID, roomID string) string {
	return hashedID("AA", requestID, roomID, newUUID())
}

// JuryAssignmentID synthesizes "ES" + 18 uppercase hex chars of
// MD5(requestId|teacherId|uuid).
func JuryAssignmentID(requestID, teacherID string) string {
	return hashedID("ES", requestID, teacherID, newUUID())
}

func hashedID(prefix string, parts ...string) string {
	sum := md5.Sum([]byte(strings.Join(parts, "|")))
	hash := strings.ToUpper(hex.EncodeToString(sum[:]))
	return truncate(prefix+hash, idByteCap)
}
