package main

import (
	"os"
	"path/filepath"
)

// fileSink persists battery-backed RAM as a single file per cartridge,
// named after the key cartridge.Load passes in (Header.PersistKey, the
// lowercased cartridge title) and placed alongside the ROM itself — the same "one .sav next to the
// .gb" convention the teacher's root main.go relies on via its save
// directory, without the teacher's savestate (types.State) machinery.
type fileSink struct {
	dir string
}

func newFileSink(romPath string) fileSink {
	return fileSink{dir: filepath.Dir(romPath)}
}

func (s fileSink) path(key string) string {
	return filepath.Join(s.dir, key+".sav")
}

func (s fileSink) Load(key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return nil, nil
	}
	return data, err
}

func (s fileSink) Save(key string, data []byte) error {
	return os.WriteFile(s.path(key), data, 0o644)
}
