package semantic

// standardTypedefs maps standard headers to the type names they declare.
// The checker does not read real headers, so an #include of one of these
// makes its typedef names known to the parser.
var standardTypedefs = map[string][]string{
	"stdio.h":     {"FILE", "fpos_t", "size_t"},
	"stdlib.h":    {"size_t", "div_t", "ldiv_t", "lldiv_t", "wchar_t"},
	"string.h":    {"size_t"},
	"stddef.h":    {"size_t", "ptrdiff_t", "wchar_t", "max_align_t"},
	"stdarg.h":    {"va_list"},
	"stdbool.h":   {"bool"},
	"time.h":      {"time_t", "clock_t", "size_t"},
	"signal.h":    {"sig_atomic_t"},
	"setjmp.h":    {"jmp_buf"},
	"wchar.h":     {"wchar_t", "wint_t", "mbstate_t", "size_t"},
	"pthread.h":   {"pthread_t", "pthread_mutex_t", "pthread_cond_t", "pthread_attr_t"},
	"unistd.h":    {"ssize_t", "pid_t", "off_t", "size_t", "uid_t", "gid_t"},
	"sys/types.h": {"ssize_t", "pid_t", "off_t", "size_t", "uid_t", "gid_t", "mode_t"},
	"stdint.h": {
		"int8_t", "int16_t", "int32_t", "int64_t",
		"uint8_t", "uint16_t", "uint32_t", "uint64_t",
		"intptr_t", "uintptr_t", "intmax_t", "uintmax_t",
	},
	"inttypes.h": {
		"int8_t", "int16_t", "int32_t", "int64_t",
		"uint8_t", "uint16_t", "uint32_t", "uint64_t",
		"intptr_t", "uintptr_t", "intmax_t", "uintmax_t",
	},
}

func typedefsFor(headers []string) map[string]bool {
	names := make(map[string]bool)
	for _, h := range headers {
		for _, name := range standardTypedefs[h] {
			names[name] = true
		}
	}
	return names
}
