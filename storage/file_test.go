package storage_test

import (
	"io"
	"io/ioutil"
	"math"
	"os"
	"path/filepath"

	"github.com/infinivision/dbdb/errmsg"
	"github.com/infinivision/dbdb/storage"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/pkg/errors"
)

// tracedFile records syncs and writes so tests can check their order.
type tracedFile struct {
	*os.File
	ops []string
	end int64 // reported by Seek(0, io.SeekEnd) when set
}

func (f *tracedFile) Sync() error {
	f.ops = append(f.ops, "sync")
	return f.File.Sync()
}

func (f *tracedFile) WriteAt(buf []byte, o int64) (int, error) {
	if o == 0 {
		f.ops = append(f.ops, "root")
	} else {
		f.ops = append(f.ops, "data")
	}
	return f.File.WriteAt(buf, o)
}

func (f *tracedFile) Seek(o int64, whence int) (int64, error) {
	if f.end != 0 && whence == io.SeekEnd {
		return f.end, nil
	}
	return f.File.Seek(o, whence)
}

var _ = Describe("Storage file handling", func() {
	var dir string
	var fp *tracedFile
	var subject storage.Storage

	BeforeEach(func() {
		var err error
		dir, err = ioutil.TempDir("", "dbdb-storage-file")
		Expect(err).NotTo(HaveOccurred())

		f, err := os.OpenFile(filepath.Join(dir, "dbdb.db"), os.O_CREATE|os.O_RDWR, 0664)
		Expect(err).NotTo(HaveOccurred())
		fp = &tracedFile{File: f}
		subject, err = storage.New(fp, testConfig())
		Expect(err).NotTo(HaveOccurred())
		fp.ops = nil
	})

	AfterEach(func() {
		if !subject.Closed() {
			_ = subject.Close()
		}
		Expect(os.RemoveAll(dir)).To(Succeed())
	})

	It("should sync data before and after the root changes", func() {
		_, err := subject.Write([]byte("x"))
		Expect(err).NotTo(HaveOccurred())
		Expect(fp.ops).To(Equal([]string{"data"}))

		Expect(subject.CommitRootAddress(4096)).To(Succeed())
		Expect(fp.ops).To(Equal([]string{"data", "sync", "root", "sync", "sync"}))
		Expect(subject.GetRootAddress()).To(Equal(uint64(4096)))
	})

	It("should refuse writes past the largest offset", func() {
		fp.end = math.MaxInt64 - 4
		_, err := subject.Write([]byte("x"))
		Expect(errors.Cause(err)).To(Equal(errmsg.RecordTooLarge))

		fp.end = math.MaxInt64 - 9
		_, err = subject.Write([]byte("xx"))
		Expect(errors.Cause(err)).To(Equal(errmsg.RecordTooLarge))
		Expect(fp.ops).To(BeEmpty())
	})

	It("should report handles closed by the caller as closed", func() {
		Expect(fp.File.Close()).To(Succeed())
		Expect(subject.Closed()).To(BeFalse())

		_, err := subject.GetRootAddress()
		Expect(errors.Cause(err)).To(Equal(errmsg.Closed))
		_, err = subject.Read(4096)
		Expect(errors.Cause(err)).To(Equal(errmsg.Closed))
	})
})
