package archive

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"

	"nottingham-lite/replay"
)

// Tape files are zstd streams: a one-line JSON header followed by the
// JSON-encoded tape body.
const tapeExt = ".tape.zst"

type Header struct {
	Version   int    `json:"version"`
	SessionID string `json:"session_id"`
	SavedAtMs int64  `json:"saved_at_ms"`
}

func TapePath(dir, sessionID string) string {
	return filepath.Join(dir, sessionID+tapeExt)
}

func WriteTape(path, sessionID string, tape *replay.SessionTape) error {
	if tape == nil {
		return fmt.Errorf("nil tape")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	defer enc.Close()

	bw := bufio.NewWriterSize(enc, 64*1024)
	defer bw.Flush()

	hb, _ := json.Marshal(Header{
		Version:   1,
		SessionID: sessionID,
		SavedAtMs: time.Now().UTC().UnixMilli(),
	})
	if _, err := bw.Write(hb); err != nil {
		return err
	}
	if err := bw.WriteByte('\n'); err != nil {
		return err
	}

	if err := json.NewEncoder(bw).Encode(tape); err != nil {
		return fmt.Errorf("tape encode: %w", err)
	}
	return nil
}

func ReadTape(path string) (Header, *replay.SessionTape, error) {
	var header Header
	f, err := os.Open(path)
	if err != nil {
		return header, nil, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return header, nil, err
	}
	defer dec.Close()

	br := bufio.NewReaderSize(dec, 64*1024)

	headerLine, err := br.ReadBytes('\n')
	if err != nil {
		return header, nil, fmt.Errorf("header read: %w", err)
	}
	if err := json.Unmarshal(headerLine, &header); err != nil {
		return header, nil, fmt.Errorf("header decode: %w", err)
	}

	var tape replay.SessionTape
	if err := json.NewDecoder(br).Decode(&tape); err != nil {
		return header, nil, fmt.Errorf("tape decode: %w", err)
	}
	return header, &tape, nil
}

// ListTapes returns the session ids archived under dir, sorted by filename.
func ListTapes(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var ids []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || len(name) <= len(tapeExt) || name[len(name)-len(tapeExt):] != tapeExt {
			continue
		}
		ids = append(ids, name[:len(name)-len(tapeExt)])
	}
	return ids, nil
}
