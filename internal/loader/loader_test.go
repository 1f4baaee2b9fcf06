package loader

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-gota/gota/series"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestDetectDelimiter(t *testing.T) {
	tests := []struct {
		name string
		data string
		want rune
	}{
		{"comma", "a,b,c\n1,2,3\n", ','},
		{"semicolon", "a;b;c\n1;2;3\n", ';'},
		{"tab", "a\tb\tc\n1\t2\t3\n", '\t'},
		{"pipe", "a|b|c\n1|2|3\n", '|'},
		{"quoted commas ignored", "\"x,y,z\";b\n\"1,2,3\";4\n", ';'},
		{"single column defaults to comma", "a\n1\n2\n", ','},
		{"empty", "", ','},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectDelimiter([]byte(tt.data), 0); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestDetectFormat(t *testing.T) {
	tests := map[string]Format{
		"data.csv":              FormatCSV,
		"DATA.TSV":              FormatCSV,
		"notes.txt":             FormatCSV,
		"rows.json":             FormatJSON,
		"s3://bucket/t.parquet": FormatParquet,
		"archive.zip":           FormatUnknown,
		"noext":                 FormatUnknown,
	}
	for path, want := range tests {
		if got := DetectFormat(path); got != want {
			t.Errorf("%s: expected %s, got %s", path, want, got)
		}
	}
}

func TestLoadCSV(t *testing.T) {
	path := writeFile(t, "people.csv", "name;age;city\nann;31;Oslo\nbob;;Rome\ncid;40;NA\n")

	df, err := Load(context.Background(), path, DefaultOptions())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if df.Nrow() != 3 || df.Ncol() != 3 {
		t.Fatalf("Expected 3x3 frame, got %dx%d", df.Nrow(), df.Ncol())
	}
	age := df.Col("age")
	if age.Type() != series.Int {
		t.Errorf("Expected age to be int, got %s", age.Type())
	}
	if !age.Elem(1).IsNA() {
		t.Errorf("Expected empty age to be NA")
	}
	if !df.Col("city").Elem(2).IsNA() {
		t.Errorf("Expected NA city to be NA")
	}
}

func TestLoadCSVExplicitDelimiter(t *testing.T) {
	path := writeFile(t, "data.txt", "a|b\n1|x,y\n")
	opts := DefaultOptions()
	opts.Delimiter = '|'

	df, err := Load(context.Background(), path, opts)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := df.Col("b").Elem(0).String(); got != "x,y" {
		t.Errorf("Expected x,y, got %s", got)
	}
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "rows.json", `[{"id": 1, "label": "a"}, {"id": 2, "label": null}]`)

	df, err := Load(context.Background(), path, DefaultOptions())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if df.Nrow() != 2 {
		t.Fatalf("Expected 2 rows, got %d", df.Nrow())
	}
	if !df.Col("label").Elem(1).IsNA() {
		t.Errorf("Expected null label to be NA")
	}
	if df.Col("id").Type() != series.Int {
		t.Errorf("Expected id to be int, got %s", df.Col("id").Type())
	}
}

func TestLoadUnsupported(t *testing.T) {
	path := writeFile(t, "data.xlsx", "whatever")
	_, err := Load(context.Background(), path, DefaultOptions())
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "absent.csv"), DefaultOptions())
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected not-exist error, got %v", err)
	}
}

func TestFromRecordsNullMarker(t *testing.T) {
	opts := Options{NAValues: []string{"missing"}}
	df, err := fromRecords([][]string{{"x"}, {"1"}, {nullMarker}, {"missing"}}, opts)
	if err != nil {
		t.Fatalf("fromRecords failed: %v", err)
	}
	col := df.Col("x")
	if !col.Elem(1).IsNA() || !col.Elem(2).IsNA() {
		t.Errorf("Expected both null forms to be NA, got %v", col.Records())
	}
}

func TestFromRecordsHeaderOnly(t *testing.T) {
	df, err := fromRecords([][]string{{"a", "b"}}, DefaultOptions())
	if err != nil {
		t.Fatalf("fromRecords failed: %v", err)
	}
	if df.Nrow() != 0 || df.Ncol() != 2 {
		t.Errorf("Expected 0x2 frame, got %dx%d", df.Nrow(), df.Ncol())
	}
}

type fakeS3 struct {
	objects map[string]string
	calls   int
}

func (f *fakeS3) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.calls++
	body, ok := f.objects[*params.Bucket+"/"+*params.Key]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewBufferString(body))}, nil
}

func TestLoadS3(t *testing.T) {
	fake := &fakeS3{objects: map[string]string{"bucket/dir/data.csv": "k,v\na,1\nb,2\n"}}
	opts := DefaultOptions()
	opts.S3.Client = fake

	df, err := Load(context.Background(), "s3://bucket/dir/data.csv", opts)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if df.Nrow() != 2 {
		t.Errorf("Expected 2 rows, got %d", df.Nrow())
	}
	if fake.calls != 1 {
		t.Errorf("Expected 1 GetObject call, got %d", fake.calls)
	}

	if _, err := Load(context.Background(), "s3://bucket/absent.csv", opts); err == nil {
		t.Error("Expected error for absent object")
	}
}

func TestParseS3URL(t *testing.T) {
	bucket, key, err := ParseS3URL("s3://my-bucket/a/b/c.parquet")
	if err != nil {
		t.Fatalf("ParseS3URL failed: %v", err)
	}
	if bucket != "my-bucket" || key != "a/b/c.parquet" {
		t.Errorf("Expected my-bucket a/b/c.parquet, got %s %s", bucket, key)
	}

	for _, bad := range []string{"s3://bucket", "s3:///key.csv", "/local/file.csv"} {
		if _, _, err := ParseS3URL(bad); err == nil {
			t.Errorf("Expected error for %s", bad)
		}
	}
}

func TestDialector(t *testing.T) {
	for _, driver := range []string{"mysql", "Postgres", "pg"} {
		if _, err := Dialector(driver, "dsn"); err != nil {
			t.Errorf("%s: unexpected error %v", driver, err)
		}
	}
	if _, err := Dialector("oracle", "dsn"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}
}
