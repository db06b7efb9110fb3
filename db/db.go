package db

import (
	"os"

	"github.com/infinivision/dbdb/constant"
	"github.com/infinivision/dbdb/errmsg"
	"github.com/infinivision/dbdb/storage"
	"github.com/nnsgmsone/damrey/logger"
	"github.com/pkg/errors"
)

func DefaultConfig() Config {
	return Config{
		Perm:           0664,
		FileName:       "dbdb.db",
		LogWriter:      os.Stderr,
		SuperblockSize: constant.SuperblockSize,
	}
}

func Open(cfg Config) (*db, error) {
	if err := checkFile(cfg.FileName); err != nil {
		return nil, err
	}
	if cfg.LogWriter == nil {
		cfg.LogWriter = os.Stderr
	}
	log := logger.New(cfg.LogWriter, "dbdb")
	fp, err := os.OpenFile(cfg.FileName, os.O_CREATE|os.O_RDWR, cfg.Perm)
	if err != nil {
		return nil, errors.Wrapf(err, "open '%s'", cfg.FileName)
	}
	s, err := storage.New(fp, storage.Config{
		Log:            log,
		SuperblockSize: cfg.SuperblockSize,
	})
	if err != nil {
		if cerr := fp.Close(); cerr != nil {
			log.Errorf("open '%s' - failed to close file: %v\n", cfg.FileName, cerr)
		}
		return nil, err
	}
	return &db{s, cfg.FileName, log}, nil
}

func (db *db) Close() error {
	if err := db.Storage.Close(); err != nil {
		if errors.Cause(err) == errmsg.Closed {
			return err
		}
		db.log.Errorf("close '%s' failed: %v\n", db.name, err)
		return err
	}
	return nil
}

func (db *db) Name() string {
	return db.name
}

func checkFile(name string) error {
	if len(name) == 0 {
		return errors.New("empty file name")
	}
	st, err := os.Stat(name)
	switch {
	case os.IsNotExist(err):
		return nil
	case err != nil:
		return err
	case st.IsDir():
		return errors.Errorf("'%s' is a directory", name)
	case st.Mode()&0600 != 0600:
		return errors.New("permission denied")
	}
	return nil
}
