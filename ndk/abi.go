package ndk

import "fmt"

// Abi describes one application binary interface an NDK toolchain can
// target. Triple is the clang target triple without an API suffix.
type Abi struct {
	Name   string
	Arch   string
	Triple string
}

var abis = []Abi{
	{
		Name:   "armeabi",
		Arch:   "arm",
		Triple: "arm-linux-androideabi",
	},
	{
		Name:   "armeabi-v7a",
		Arch:   "arm",
		Triple: "armv7a-linux-androideabi",
	},
	{
		Name:   "arm64-v8a",
		Arch:   "arm64",
		Triple: "aarch64-linux-android",
	},
	{
		Name:   "x86",
		Arch:   "x86",
		Triple: "i686-linux-android",
	},
	{
		Name:   "x86_64",
		Arch:   "x86_64",
		Triple: "x86_64-linux-android",
	},
	{
		Name:   "mips",
		Arch:   "mips",
		Triple: "mipsel-linux-android",
	},
	{
		Name:   "mips64",
		Arch:   "mips64",
		Triple: "mips64el-linux-android",
	},
}

func AbiByName(name string) (Abi, error) {
	for _, abi := range abis {
		if abi.Name == name {
			return abi, nil
		}
	}
	return Abi{}, fmt.Errorf("unknown abi: %s", name)
}

func AbiNames() []string {
	names := make([]string, 0, len(abis))
	for _, abi := range abis {
		names = append(names, abi.Name)
	}
	return names
}
