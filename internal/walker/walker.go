package walker

import (
	"github.com/linmemparser/linmemparser/internal/errs"
	"github.com/linmemparser/linmemparser/internal/offsets"
	"github.com/linmemparser/linmemparser/internal/reader"
	"github.com/sirupsen/logrus"
)

// maxWalkSteps bounds the traversal against a corrupt or adversarially
// crafted list that never closes (spec.md §4.4).
const maxWalkSteps = 10_000

// Walk performs the kernel container_of idiom over task_struct.tasks,
// starting at anchorOffset, and returns every record that survives
// validation. A record that fails validation is skipped with a warning;
// a tasks.next that cannot be read, is null, or cannot be translated is
// fatal and returned as an error alongside whatever records were
// collected before the failure.
func Walk(rd *reader.Reader, fo offsets.FieldOffsets, anchorOffset int64, log *logrus.Logger) ([]Process, error) {
	visited := make(map[int64]bool)
	var out []Process

	offset := anchorOffset
	for step := 0; ; step++ {
		if visited[offset] || step >= maxWalkSteps || offset >= int64(rd.Len()) {
			break
		}
		visited[offset] = true

		record, err := extractRecord(rd, offset, fo)
		switch {
		case err != nil:
			log.WithError(err).WithField("offset", offset).Warn("walker: failed to extract record, skipping")
		case !validateRecord(record):
			log.WithField("offset", offset).WithField("pid", record.Pid).Warn("walker: record failed validation, skipping")
		default:
			out = append(out, record)
		}

		next, err := rd.ReadU64(offset + int64(fo.Tasks))
		if err != nil {
			return out, errs.Wrap(errs.InvalidStructure, err, "walker: reading tasks.next")
		}
		if next == 0 {
			return out, errs.New(errs.InvalidStructure, "walker: null tasks.next mid-walk; a well-formed circular list never contains a null link")
		}

		_, nextOff, ok := rd.ReadPtr(offset + int64(fo.Tasks))
		if !ok {
			return out, errs.Newf(errs.AddressTranslationFailed, "walker: untranslatable tasks.next pointer 0x%x at offset %d", next, offset)
		}

		nextBase := nextOff - int64(fo.Tasks)
		if nextBase == anchorOffset {
			log.WithField("steps", step+1).Debug("walker: circular list closed cleanly")
			break
		}
		offset = nextBase
	}

	return out, nil
}
