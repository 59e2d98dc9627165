package analyzer

import (
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/ludo-technologies/mockscn/domain"
)

// CloneFingerprint returns a stable identifier for a clone instance. The same
// pattern over the same member sequences always hashes to the same ID, so
// reports from separate runs can be compared.
func CloneFingerprint(inst *domain.MockCloneInstance) string {
	var sb strings.Builder
	sb.WriteString(string(inst.Kind))
	sb.WriteByte(0)
	sb.WriteString(inst.MockedClass)
	sb.WriteByte(0)
	sb.WriteString(inst.Namespace)
	sb.WriteByte(0)

	for _, stmt := range inst.SharedStatements {
		sb.WriteString(stmt)
		sb.WriteByte(1)
	}
	sb.WriteByte(0)

	for _, seq := range inst.Sequences {
		sb.WriteString(seq.FilePath)
		sb.WriteByte(1)
		sb.WriteString(seq.ClassName)
		sb.WriteByte(1)
		sb.WriteString(seq.TestMethodName)
		sb.WriteByte(1)
		sb.WriteString(strconv.Itoa(seq.MockObjectID))
		sb.WriteByte(0)
	}

	return strconv.FormatUint(xxhash.Sum64String(sb.String()), 16)
}
