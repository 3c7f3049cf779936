package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

const samplePassage = `도시의 나무는 여름철 기온을 낮추는 데 큰 역할을 한다. 나무 그늘은 햇빛을 가려 땅이 뜨거워지는 것을 막는다. 또한 잎에서 증발하는 수분은 주변 공기를 식힌다.

그러나 도시의 나무는 좁은 땅과 오염된 공기 때문에 쉽게 병든다. 따라서 나무를 심는 것만큼 돌보는 일도 중요하다. 예를 들어 뿌리 주변의 흙을 넓게 확보하면 나무가 더 오래 산다.

사람들은 나무가 주는 혜택을 당연하게 여긴다. 하지만 한 그루의 나무가 자라기까지는 오랜 시간이 걸린다. 우리는 나무를 지키는 일에 함께 나서야 한다.`

const sampleStory = `할머니의 손은 나무껍질처럼 거칠었다. 그 손으로 할머니는 매일 아침 마당을 쓸었다.

나는 마루에 앉아 할머니를 바라보았다. 빗자루 소리는 노래처럼 마당에 퍼졌다. 그러나 할머니는 한 번도 힘들다고 말하지 않았다.

어느 봄날 할머니는 마당 한쪽에 꽃씨를 심었다. 나는 그 꽃이 피기를 날마다 기다렸다. 마침내 꽃이 피던 날 할머니는 환하게 웃었다.

그해 여름 마당은 꽃으로 가득했다. 나는 할머니의 거친 손이 얼마나 따뜻한지 그제야 알게 되었다.`

// execute runs the root command in-process with fresh flag values
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, c := range rootCmd.Commands() {
		resetFlags(c)
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags(c *cobra.Command) {
	c.Flags().VisitAll(func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	})
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
