package db_test

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/infinivision/dbdb/db"
	"github.com/infinivision/dbdb/errmsg"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("DB", func() {
	var dir string
	var cfg db.Config

	BeforeEach(func() {
		var err error
		dir, err = ioutil.TempDir("", "dbdb")
		Expect(err).NotTo(HaveOccurred())

		cfg = db.DefaultConfig()
		cfg.FileName = filepath.Join(dir, "test.db")
		cfg.LogWriter = GinkgoWriter
	})

	AfterEach(func() {
		Expect(os.RemoveAll(dir)).To(Succeed())
	})

	It("should create and initialize the file", func() {
		d, err := db.Open(cfg)
		Expect(err).NotTo(HaveOccurred())
		defer d.Close()

		Expect(d.Name()).To(Equal(cfg.FileName))
		st, err := os.Stat(cfg.FileName)
		Expect(err).NotTo(HaveOccurred())
		Expect(st.Size()).To(Equal(int64(4096)))
		Expect(d.GetRootAddress()).To(Equal(uint64(0)))
	})

	It("should persist records and the root", func() {
		d, err := db.Open(cfg)
		Expect(err).NotTo(HaveOccurred())
		addr, err := d.Write([]byte("hello"))
		Expect(err).NotTo(HaveOccurred())
		Expect(d.CommitRootAddress(addr)).To(Succeed())
		Expect(d.Close()).To(Succeed())
		Expect(d.Closed()).To(BeTrue())

		d, err = db.Open(cfg)
		Expect(err).NotTo(HaveOccurred())
		defer d.Close()
		root, err := d.GetRootAddress()
		Expect(err).NotTo(HaveOccurred())
		Expect(root).To(Equal(addr))
		Expect(d.Read(root)).To(Equal([]byte("hello")))
	})

	It("should refuse directories", func() {
		cfg.FileName = dir
		_, err := db.Open(cfg)
		Expect(err).To(MatchError(ContainSubstring("is a directory")))
	})

	It("should refuse empty names", func() {
		cfg.FileName = ""
		_, err := db.Open(cfg)
		Expect(err).To(HaveOccurred())
	})

	It("should report double close without logging it", func() {
		buf := new(bytes.Buffer)
		cfg.LogWriter = buf
		d, err := db.Open(cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(d.Close()).To(Succeed())
		Expect(d.Close()).To(Equal(errmsg.Closed))
		Expect(buf.Len()).To(BeZero())
	})
})

func TestSuite(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "db")
}
