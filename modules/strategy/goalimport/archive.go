package goalimport

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// rawCollections holds the five logical JSON arrays extracted from the
// export archive. Absent members leave their collection empty.
type rawCollections struct {
	Periods   []SourcePeriod
	Teams     []SourceTeam
	Users     []SourceUser
	GoalItems []SourceGoalItem
	CheckIns  []SourceCheckIn
}

// readArchive opens the ZIP container and classifies each member by
// filename substring. The only fatal condition is an unreadable
// container; a member that fails to decode is recorded in memberErrors
// and the rest of the archive is still read.
func readArchive(data []byte) (*rawCollections, []string, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to open archive")
	}

	collections := &rawCollections{}
	var memberErrors []string

	for _, member := range reader.File {
		if member.FileInfo().IsDir() {
			continue
		}
		payload, err := readMember(member)
		if err != nil {
			memberErrors = append(memberErrors, fmt.Sprintf("archive member %q: %v", member.Name, err))
			continue
		}

		// Substring match on the member name, not its path.
		switch {
		case strings.Contains(member.Name, "TimePeriods"):
			err = decodeMember(payload, &collections.Periods)
		case strings.Contains(member.Name, "Teams"):
			err = decodeMember(payload, &collections.Teams)
		case strings.Contains(member.Name, "Users"):
			err = decodeMember(payload, &collections.Users)
		case strings.Contains(member.Name, "objectives"):
			err = decodeMember(payload, &collections.GoalItems)
		case strings.Contains(member.Name, "checkins"):
			err = decodeMember(payload, &collections.CheckIns)
		default:
			continue
		}
		if err != nil {
			memberErrors = append(memberErrors, fmt.Sprintf("archive member %q: %v", member.Name, err))
		}
	}

	return collections, memberErrors, nil
}

func readMember(member *zip.File) ([]byte, error) {
	rc, err := member.Open()
	if err != nil {
		return nil, errors.Wrap(err, "failed to open member")
	}
	defer rc.Close()
	payload, err := io.ReadAll(rc)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read member")
	}
	return payload, nil
}

// decodeMember requires a top-level JSON array; anything else is an
// error for that member only.
func decodeMember(payload []byte, target any) error {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return errors.New("expected a top-level JSON array")
	}
	if err := json.Unmarshal(trimmed, target); err != nil {
		return errors.Wrap(err, "failed to decode JSON array")
	}
	return nil
}
