package main

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/born-ml/ndarray/internal/npy"
	"github.com/born-ml/ndarray/internal/parallel"
	"github.com/born-ml/ndarray/internal/tensor"
)

func infoCommand(fs *pflag.FlagSet) func(e *env, args []string) error {
	jobs := fs.IntP("jobs", "j", runtime.NumCPU(), "number of files inspected concurrently")
	expect := fs.String("expect", "", "fail unless the xxhash64 of the element data equals this hex value (one .npy file)")
	return func(e *env, args []string) error {
		if len(args) == 0 {
			return fmt.Errorf("%w: info needs at least one file", errUsage)
		}
		if *jobs < 1 {
			return fmt.Errorf("%w: --jobs must be at least 1", errUsage)
		}
		var want *uint64
		if *expect != "" {
			if len(args) != 1 || isArchive(args[0]) {
				return fmt.Errorf("%w: --expect needs exactly one .npy file", errUsage)
			}
			sum, err := strconv.ParseUint(strings.TrimPrefix(*expect, "0x"), 16, 64)
			if err != nil {
				return fmt.Errorf("%w: --expect: %v", errUsage, err)
			}
			want = &sum
		}

		// Files are independent; each report is buffered and printed in argument order.
		reports := make([]bytes.Buffer, len(args))
		errs := make([]error, len(args))
		parallel.For(len(args), func(i int) {
			e.logger.Debug("inspecting", "path", args[i])
			if isArchive(args[i]) {
				errs[i] = archiveInfo(&reports[i], args[i])
			} else {
				errs[i] = fileInfo(&reports[i], args[i], want)
			}
		}, parallel.Config{Enabled: *jobs > 1, NumWorkers: *jobs, MinChunkSize: 1})

		for i := range args {
			if errs[i] != nil {
				return errs[i]
			}
			if _, err := reports[i].WriteTo(e.stdout); err != nil {
				return err
			}
		}
		return nil
	}
}

// fileInfo writes the header summary of a .npy file. When want is set the
// payload checksum must match it.
func fileInfo(w io.Writer, path string, want *uint64) error {
	r, err := npy.NewMmapReader(path)
	if err != nil {
		return err
	}
	defer func() { _ = r.Close() }()

	sum, err := r.Checksum()
	if err != nil {
		return fmt.Errorf("failed to checksum %s: %w", path, err)
	}
	h := r.Header()
	fmt.Fprintf(w, "%s\n", path)
	fmt.Fprintf(w, "  version:  %d.%d\n", h.Major, h.Minor)
	fmt.Fprintf(w, "  descr:    %s (%s, %s)\n", h.Descr(), h.DType, h.ByteOrder)
	fmt.Fprintf(w, "  shape:    %s\n", formatShape(h.Shape))
	fmt.Fprintf(w, "  order:    %s\n", h.Order)
	fmt.Fprintf(w, "  data:     %d bytes at offset %d\n", h.DataSize(), r.DataOffset())
	fmt.Fprintf(w, "  xxhash64: %016x\n", sum)
	if want != nil {
		if err := npy.ValidateChecksum(sum, *want); err != nil {
			return fmt.Errorf("%s: %w (got %016x, want %016x)", path, err, sum, *want)
		}
	}
	return nil
}

func archiveInfo(w io.Writer, path string) error {
	ar, err := npy.OpenArchive(path)
	if err != nil {
		return err
	}
	defer func() { _ = ar.Close() }()

	fmt.Fprintf(w, "%s\n", path)
	for _, name := range ar.Names() {
		h, err := ar.ArchiveHeader(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  %s: %s %s %s\n", name, h.Descr(), formatShape(h.Shape), h.Order)
	}
	return nil
}

func listCommand(_ *pflag.FlagSet) func(e *env, args []string) error {
	return func(e *env, args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("%w: list needs exactly one archive", errUsage)
		}
		ar, err := npy.OpenArchive(args[0])
		if err != nil {
			return err
		}
		defer func() { _ = ar.Close() }()

		tw := tabwriter.NewWriter(e.stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tDESCR\tSHAPE\tORDER")
		for _, name := range ar.Names() {
			h, err := ar.ArchiveHeader(name)
			if err != nil {
				return err
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", name, h.Descr(), formatShape(h.Shape), h.Order)
		}
		return tw.Flush()
	}
}

// writeFlags are the encoding overrides shared by convert and pack.
type writeFlags struct {
	dtype  string
	endian string
	order  string
}

func (f *writeFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.dtype, "dtype", "", "on-disk element type, e.g. f4, <i8, float64 (default: keep source type)")
	fs.StringVar(&f.endian, "endian", "", "byte order: little, big or native (default: from config)")
	fs.StringVar(&f.order, "order", "", "element order: C (row-major) or F (column-major) (default: from config)")
}

// apply overlays the flags on the config's write settings.
func (f *writeFlags) apply(e *env) ([]npy.Option, error) {
	if f.dtype != "" {
		e.cfg.Write.DType = f.dtype
	}
	if f.endian != "" {
		e.cfg.Write.ByteOrder = f.endian
	}
	switch strings.ToUpper(f.order) {
	case "":
	case "C":
		e.cfg.Write.FortranOrder = false
	case "F":
		e.cfg.Write.FortranOrder = true
	default:
		return nil, fmt.Errorf("%w: --order must be C or F, got %q", errUsage, f.order)
	}
	if err := e.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", errUsage, err)
	}
	return e.cfg.WriteOptions()
}

func convertCommand(fs *pflag.FlagSet) func(e *env, args []string) error {
	var wf writeFlags
	wf.register(fs)

	return func(e *env, args []string) error {
		if len(args) != 2 {
			return fmt.Errorf("%w: convert needs an input and an output file", errUsage)
		}
		opts, err := wf.apply(e)
		if err != nil {
			return err
		}

		in, out := args[0], args[1]
		r, err := npy.NewReader(in)
		if err != nil {
			return err
		}
		defer func() { _ = r.Close() }()

		warnIfLossy(e, in, r.Header())
		if err := copyArray(r, destination{path: out, opts: opts}); err != nil {
			return err
		}
		e.logger.Info("converted array", "in", in, "out", out, "descr", r.Header().Descr(), "shape", r.Header().Shape)
		return nil
	}
}

func packCommand(fs *pflag.FlagSet) func(e *env, args []string) error {
	var wf writeFlags
	var compression string
	wf.register(fs)
	fs.StringVar(&compression, "compression", "", "stored, deflate or zstd (default: from config)")

	return func(e *env, args []string) error {
		if len(args) < 2 {
			return fmt.Errorf("%w: pack needs an archive and at least one input", errUsage)
		}
		if compression != "" {
			e.cfg.Archive.Compression = compression
		}
		opts, err := wf.apply(e)
		if err != nil {
			return err
		}
		c, err := e.cfg.Compression()
		if err != nil {
			return err
		}

		aw, err := npy.CreateArchive(args[0], c)
		if err != nil {
			return err
		}
		for _, in := range args[1:] {
			if err := packFile(e, aw, in, opts); err != nil {
				_ = aw.Close()
				return err
			}
		}
		if err := aw.Close(); err != nil {
			return err
		}
		e.logger.Info("wrote archive", "path", args[0], "arrays", len(args)-1, "compression", c)
		return nil
	}
}

func packFile(e *env, aw *npy.ArchiveWriter, in string, opts []npy.Option) error {
	r, err := npy.NewReader(in)
	if err != nil {
		return err
	}
	defer func() { _ = r.Close() }()

	name := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
	warnIfLossy(e, in, r.Header())
	if err := copyArray(r, destination{archive: aw, name: name, opts: opts}); err != nil {
		return err
	}
	e.logger.Debug("packed array", "name", name, "descr", r.Header().Descr(), "shape", r.Header().Shape)
	return nil
}

// warnIfLossy logs when the configured element type drops the imaginary
// part of a complex source.
func warnIfLossy(e *env, path string, h npy.Header) {
	if e.cfg.Write.DType == "" || !h.DType.IsComplex() {
		return
	}
	dt, err := npy.ParseDType(e.cfg.Write.DType)
	if err != nil || dt.IsComplex() {
		return
	}
	e.logger.Warn("imaginary parts are discarded", "path", path, "from", h.DType, "to", dt)
}

// destination is where copyArray writes: a .npy file, or an archive entry
// when archive is set.
type destination struct {
	path    string
	archive *npy.ArchiveWriter
	name    string
	opts    []npy.Option
}

// copyArray decodes r in its own element type and writes it to dst.
//
//nolint:gocyclo,cyclop // One case per supported element type
func copyArray(r *npy.Reader, dst destination) error {
	switch dt := r.Header().DType; dt {
	case tensor.Uint8:
		return copyAs[uint8](r, dst)
	case tensor.Uint16:
		return copyAs[uint16](r, dst)
	case tensor.Uint32:
		return copyAs[uint32](r, dst)
	case tensor.Uint64:
		return copyAs[uint64](r, dst)
	case tensor.Int8:
		return copyAs[int8](r, dst)
	case tensor.Int16:
		return copyAs[int16](r, dst)
	case tensor.Int32:
		return copyAs[int32](r, dst)
	case tensor.Int64:
		return copyAs[int64](r, dst)
	case tensor.Float32:
		return copyAs[float32](r, dst)
	case tensor.Float64:
		return copyAs[float64](r, dst)
	case tensor.Complex64:
		return copyAs[complex64](r, dst)
	case tensor.Complex128:
		return copyAs[complex128](r, dst)
	default:
		return fmt.Errorf("%w: %s", npy.ErrUnsupportedDType, dt)
	}
}

func copyAs[T tensor.Scalar](r *npy.Reader, dst destination) error {
	a, err := npy.ReadArray[T](r)
	if err != nil {
		return err
	}
	if dst.archive != nil {
		return npy.AddArray[T](dst.archive, dst.name, a, dst.opts...)
	}
	return npy.Save[T](dst.path, a, dst.opts...)
}

func isArchive(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".npz")
}

// formatShape renders a shape as a tuple, e.g. (2, 3) or (5,).
func formatShape(s tensor.Shape) string {
	parts := make([]string, len(s))
	for i, d := range s {
		parts[i] = fmt.Sprint(d)
	}
	if len(parts) == 1 {
		return "(" + parts[0] + ",)"
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
