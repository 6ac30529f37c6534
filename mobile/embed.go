//go:build mobile

// 移动端配置嵌入声明，仅在 -tags mobile 时编译
// //go:embed 只能引用本目录下的文件，data/novadraw.yaml 须与根目录的同名文件保持一致
package mobile

import "embed"

//go:embed data/novadraw.yaml
var dataFS embed.FS
