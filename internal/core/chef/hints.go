package chef

// matchPrefixTiers 一致率による前置き。閾値の高い順
var matchPrefixTiers = []struct {
	threshold int
	prefix    string
}{
	{90, "完璧に"},
	{70, "かなりいい感じに"},
	{50, "まあまあ"},
	{30, "かなり無理くりだけど"},
	{0, "ほぼ無理やりだけど"},
}

// Mood 一致率に応じたキャラクターの表情・コメント・色
type Mood struct {
	Face    string `json:"face"`
	Comment string `json:"comment"`
	Color   string `json:"color"`
}

// MoodFor 一致率に応じた表情を返す
func MoodFor(rate int) Mood {
	switch {
	case rate >= 90:
		return Mood{Face: "🤩", Comment: "完璧だぞい！！", Color: "#4caf50"}
	case rate >= 70:
		return Mood{Face: "😄", Comment: "かなりいい感じだぞい！", Color: "#8bc34a"}
	case rate >= 50:
		return Mood{Face: "🙂", Comment: "やりくり上手だぞい！", Color: "#e8a020"}
	case rate >= 30:
		return Mood{Face: "😅", Comment: "言い切れば大丈夫だぞい！", Color: "#ff9800"}
	default:
		return Mood{Face: "😬", Comment: "オリジナルを生み出したぞい！", Color: "#f44336"}
	}
}

// seasoningHints ジャンル別調味料ヒント
var seasoningHints = map[string]string{
	"和食":    "醤油・みりん・砂糖・だしの素があると和食っぽくなるぞい。でも実はめんつゆだけでもなんとかなるぞい",
	"洋食":    "塩・こしょう・バターがあると洋食っぽくなるぞい。ケチャップやマヨネーズも強い味方になってくれるぞい",
	"中華":    "醤油・ごま油・オイスターソースがあると中華っぽくなるぞい。でも鶏がらスープの素とチューブのニンニクの合わせ技も捨てがたいぞい",
	"エスニック": "ナンプラーかごま油があるとエスニックっぽくなるぞい。なかったら醤油とチューブのニンニクで代用するといいぞい",
}

// defaultSeasoningHint ジャンルが未知のときの調味料ヒント
const defaultSeasoningHint = "手元にあるやつ入れたらいいぞい"

// eatingHints ジャンル別食べ方ヒント
var eatingHints = map[string]string{
	"和食":    "ご飯と一緒に食べるとおいしいぞい。汁物があるとさらにいいぞい",
	"洋食":    "パンと一緒でもご飯と一緒でもおいしいぞい",
	"中華":    "白いご飯と一緒に食べると最高だぞい",
	"エスニック": "ご飯と一緒でも麺類と一緒でもいけるぞい",
}

// defaultEatingHint ジャンルが未知のときの食べ方ヒント
const defaultEatingHint = "好きなように食べるといいぞい"

// stapleEatingHint 主食系を使える料理はそれだけで一食になる
const stapleEatingHint = "これだけで立派な一食になるぞい！お好みで汁物を添えるといいぞい"

// ShoppingAdvice 救済パスで出す買い物アドバイス
var ShoppingAdvice = []string{
	"ふりかけとかお漬物とか卵買っとくと、ご飯がおいしく食べれるぞい",
	"卵と豆腐があればだいたいなんとかなるぞい。買っておくといいぞい",
	"缶詰（ツナとかサバとか）を棚に常備しておくと便利だぞい",
	"冷凍うどんとか冷凍チャーハンがあると、何もないときに助かるぞい",
	"納豆はご飯さえあればそれだけで立派な食事になるぞい",
	"インスタントのスープや味噌汁やわかめスープがあると、お湯だけで1品増やせるぞい",
	"調味料に迷ったら、塩だけ醬油だけでもなんとかなるぞい",
}

// SeasoningHintFor ジャンル別の調味料ヒント
func SeasoningHintFor(genre string) string {
	if hint, ok := seasoningHints[genre]; ok {
		return hint
	}
	return defaultSeasoningHint
}

// EatingHintFor 食べ方ヒント。主食系が使える料理は専用の文言
func EatingHintFor(genre string, usableCategories []string) string {
	for _, cat := range usableCategories {
		if cat == "主食系" {
			return stapleEatingHint
		}
	}
	if hint, ok := eatingHints[genre]; ok {
		return hint
	}
	return defaultEatingHint
}
