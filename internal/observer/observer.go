package observer

// Observer 观察者接口，每当一个 URL 得到最终结果时收到通知。
type Observer interface {
	Update(completed, total int)
}

// Observable 被观察者（主题）接口。
type Observable interface {
	AddObserver(o Observer)
	Notify(completed, total int)
}
