package components

// ParticleComponent 渗透压小游戏中的一粒盐
// X 在创建时固定（按屏幕宽度比例分布），只在垂直方向移动，越过屏幕边缘后从另一侧绕回
//
// 纯数据组件，移动由 ParticleSystem 负责
type ParticleComponent struct {
	X, Y      float64 // 左上角位置（逻辑屏幕坐标）
	VelocityY float64 // 垂直速度（像素/帧，正数向下）
	Size      float64 // 绘制边长（正方形）
}
