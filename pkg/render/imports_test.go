package render

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const modulePath = "github.com/gonewx/vslider"

// moduleRoot 相对本包目录的模块根目录
const moduleRoot = "../.."

// localImports 收集目录下非测试源文件的导入路径
func localImports(t *testing.T, dir string) []string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var imports []string
	fset := token.NewFileSet()
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		f, err := parser.ParseFile(fset, filepath.Join(dir, name), nil, parser.ImportsOnly)
		require.NoError(t, err)
		for _, spec := range f.Imports {
			path, err := strconv.Unquote(spec.Path.Value)
			require.NoError(t, err)
			imports = append(imports, path)
		}
	}
	return imports
}

// findEbitenImport 沿模块内的导入关系查找 ebiten 依赖，返回导入链（为空表示没有）
func findEbitenImport(t *testing.T, pkg string, visited map[string]bool) []string {
	t.Helper()
	if visited[pkg] {
		return nil
	}
	visited[pkg] = true

	dir := filepath.Join(moduleRoot, filepath.FromSlash(strings.TrimPrefix(pkg, modulePath)))
	for _, imp := range localImports(t, dir) {
		if strings.HasPrefix(imp, "github.com/hajimehoshi/ebiten") {
			return []string{pkg, imp}
		}
		if strings.HasPrefix(imp, modulePath+"/") {
			if chain := findEbitenImport(t, imp, visited); chain != nil {
				return append([]string{pkg}, chain...)
			}
		}
	}
	return nil
}

// TestHeadlessPackages 终端和快照工具及其依赖不能引入 ebiten（否则需要窗口后端才能构建）
func TestHeadlessPackages(t *testing.T) {
	tests := []struct {
		name string
		pkg  string
	}{
		{name: "render 包", pkg: modulePath + "/pkg/render"},
		{name: "终端程序", pkg: modulePath + "/cmd/slidertui"},
		{name: "快照工具", pkg: modulePath + "/cmd/slidersnap"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chain := findEbitenImport(t, tt.pkg, map[string]bool{})
			if chain != nil {
				t.Errorf("%s imports ebiten via %s", tt.pkg, strings.Join(chain, " -> "))
			}
		})
	}
}
