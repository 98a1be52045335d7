package command

const (
	DenyBossOnly      = "เฉพาะหัวหน้าเท่านั้น"
	DenyBossSecretary = "เฉพาะหัวหน้าและเลขาเท่านั้น"
	NotUnderstood     = "ไม่เข้าใจคำสั่ง กรุณาพิมพ์ 'help' เพื่อดูคำสั่งที่ใช้ได้"
	GenericError      = "เกิดข้อผิดพลาด กรุณาลองใหม่อีกครั้ง"

	PromptSendText = "กรุณาพิมพ์ข้อความที่ต้องการส่งให้เลขา\nตัวอย่าง: ผู้ช่วย กรุณาเตรียมเอกสารประชุม\nหรือ: เลขา กรุณาจัดเตรียมห้องประชุม"
	UrgentUsage    = "กรุณาระบุงาน เช่น: งานด่วน:เตรียมเอกสารประชุม"
	AddUsage       = "รูปแบบ: เพิ่มงาน ชื่องาน วันที่ เวลา [สถานที่] [#หมวดหมู่]\nตัวอย่าง: เพิ่มงาน ประชุม 15 14:00 ห้องประชุม\nหลายงาน: เพิ่มงาน ประชุม 15 14:00 | พบลูกค้า 20 10:00 ออฟฟิศ"

	MessageGuideText = "วิธีส่งข้อความให้เลขา:\n\n" +
		"🔸 รูปแบบใหม่ (แนะนำ):\nผู้ช่วย กรุณาเตรียมเอกสารประชุม\nเลขา กรุณาจัดเตรียมห้องประชุม\n\n" +
		"🔸 รูปแบบเดิม (ยังใช้ได้):\nผู้ช่วย:กรุณาเตรียมเอกสารประชุม\nเลขา:กรุณาจัดเตรียมห้องประชุม\nข้อความ:กรุณาเตรียมเอกสารประชุม\n\n" +
		"🔸 วิธีเพิ่มงาน:\nเพิ่มงาน:ประชุม 15 14:00 ห้องประชุม\nนัดหมาย:พบลูกค้า 20 10:00 ออฟฟิศ"
)

// MenuActionPrefix marks help-menu buttons; the button value is the menu digit
const MenuActionPrefix = "menu_"

// HelpMenu lists the numeric menu shown by the help card, in display order
var HelpMenu = []struct {
	Digit string
	Label string
}{
	{"1", "📅 ตารางงานวันนี้"},
	{"2", "📆 ตารางงานพรุ่งนี้"},
	{"3", "💬 ส่งข้อความให้เลขา"},
	{"4", "📖 วิธีส่งข้อความให้เลขา"},
	{"5", "🗓️ ตารางงานสัปดาห์นี้"},
	{"6", "🗓️ ตารางงานเดือนนี้"},
}

func GetHelpText() string {
	text := "*คำสั่งที่ใช้ได้* (พิมพ์ตัวเลขหรือข้อความ)\n"
	for _, item := range HelpMenu {
		text += "• `" + item.Digit + "` " + item.Label + "\n"
	}
	text += "• `เพิ่มงาน ชื่องาน วันที่ เวลา [สถานที่]` เพิ่มงาน\n"
	text += "• `งานด่วน: งาน` ส่งงานด่วนให้เลขา\n"
	text += "หรือพิมพ์ 'help' เพื่อดูเมนูนี้อีกครั้ง"
	return text
}
