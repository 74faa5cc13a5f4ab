package output

import (
	"encoding/csv"
	"io"
	"strconv"
)

var csvHeader = []string{"pid", "ppid", "uid", "gid", "state", "start_time", "comm", "cmdline", "depth"}

func writeCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			strconv.FormatInt(int64(r.Pid), 10),
			strconv.FormatInt(int64(r.PPid), 10),
			strconv.FormatUint(uint64(r.UID), 10),
			strconv.FormatUint(uint64(r.GID), 10),
			r.State,
			strconv.FormatUint(r.StartTime, 10),
			r.Comm,
			r.Cmdline,
			strconv.Itoa(r.Depth),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
