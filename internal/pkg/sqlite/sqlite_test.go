package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestOpen(t *testing.T) {
	Convey("Open 创建表结构", t, func() {
		ctx := context.Background()

		Convey("内存库", func() {
			db, err := Open(ctx, MemoryPath)
			So(err, ShouldBeNil)
			defer db.Close()

			var n int
			err = db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name IN ('conversations','responses')`).Scan(&n)
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 2)
		})

		Convey("文件库可重复打开", func() {
			path := filepath.Join(t.TempDir(), "data", "roundtable.db")
			db, err := Open(ctx, path)
			So(err, ShouldBeNil)
			So(db.Close(), ShouldBeNil)

			db, err = Open(ctx, path)
			So(err, ShouldBeNil)
			So(db.Close(), ShouldBeNil)
		})

		Convey("唯一索引冲突可识别", func() {
			db, err := Open(ctx, MemoryPath)
			So(err, ShouldBeNil)
			defer db.Close()

			_, err = db.ExecContext(ctx, `INSERT INTO conversations VALUES ('c1', CURRENT_TIMESTAMP, 'r', 'a', 'opinion', 'f', '[]')`)
			So(err, ShouldBeNil)
			insert := `INSERT INTO responses (id, conversation_id, round, model, content) VALUES (?, 'c1', 1, 'claude', 'x')`
			_, err = db.ExecContext(ctx, insert, "r1")
			So(err, ShouldBeNil)
			_, err = db.ExecContext(ctx, insert, "r2")
			So(IsUniqueViolation(err), ShouldBeTrue)
		})

		Convey("空路径返回错误", func() {
			_, err := Open(ctx, "")
			So(err, ShouldNotBeNil)
		})
	})
}
