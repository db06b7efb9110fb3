package db

import (
	"io"
	"os"

	"github.com/infinivision/dbdb/storage"
	"github.com/nnsgmsone/damrey/logger"
)

/*
DB is a Storage opened from a path. DB is not thread-safe; the file lock
only keeps other processes out of a writer's critical section.
*/
type DB interface {
	storage.Storage
	Name() string
}

type Config struct {
	FileName       string
	Perm           os.FileMode
	LogWriter      io.Writer
	SuperblockSize int64
}

type db struct {
	storage.Storage
	name string
	log  logger.Log
}
