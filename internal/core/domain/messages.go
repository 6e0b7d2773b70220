package domain

// User-facing texts. The bot speaks Arabic; log output stays English.

const BotName = "سُطورٌ من السَّماء ☁️"

// MsgWelcome greets a new chat. The format verb takes the user's first name.
const MsgWelcome = `🌟 أهلاً وسهلاً %s في سُطورٌ من السَّماء ☁️

🕊️ مرحباً بك في رفيقك الإيماني الشامل لتجربة قرآنية متكاملة

✨ ماذا نقدم لك؟

📖 مصحف ذكي متكامل:
• تصفح القرآن بنسخة نصية كاملة
• تجربة قراءة سلسة مع تقسيم آلي للصفحات
• تنقل سهل بين السور والآيات

📻 راديو القرآن الكريم:
• بث مباشر على مدار الساعة لتلاوات عطرة
• واجهة تفاعلية متطورة مع تحكم كامل
• تشغيل مستمر بدون انقطاع

🔍 بحث ذكي متقدم:
• بحث في آيات القرآن باستخدام الذكاء الاصطناعي
• تفسير مختصر للآيات مباشرة
• دعم البحث باللغة العربية والإنجليزية

🎵 مكتبة تلاوات شاملة:
• مجموعة كبيرة من أشهر القراء العالميين
• جودة صوت عالية مع خيارات متعددة
• تحميل وتشغيل مباشر

🤲 "وَقَالَ الرَّسُولُ يَا رَبِّ إِنَّ قَوْمِي اتَّخَذُوا هَٰذَا الْقُرْآنَ مَهْجُورًا" (الفرقان: 30)

💎 نهدي لك هذا البوت لتكون القرآن رفيقك في كل وقت

🚀 اختر الخدمة التي تناسبك من القائمة أدناه:`

const MsgMainMenu = `✨ سُطورٌ من السَّماء ☁️

🕊️ مرحباً بك في القائمة الرئيسية

🌟 خدماتنا المتكاملة:

📖 المصحف الشامل: نسخة نصية كاملة مع تجربة قراءة ممتعة
📻 الراديو المباشر: بث مستمر لتلاوات عطرة على مدار الساعة
🔍 البحث الذكي: بحث متقدم بالذكاء الاصطناعي مع تفسير مختصر
🎵 مكتبة التلاوات: مجموعة كبيرة من القراء بجودة عالية

🤲 "وَهَـٰذَا كِتَابٌ أَنزَلْنَاهُ مُبَارَكٌ فَاتَّبِعُوهُ وَاتَّقُوا لَعَلَّكُمْ تُرْحَمُونَ" (الأنعام: 155)

🚀 اختر الخدمة التي تناسبك من القائمة أدناه:`

const MsgSubscriptionRequired = `🌟 مرحباً بك في بوت سُطورٌ من السَّماء ☁️

📖 شرط الاستخدام:
يجب الاشتراك في قناتنا الرسمية لاستخدام خدمات البوت.

📣 ماذا تقدم القناة؟
• آيات قرآنية يومية مع تفسير مختصر 🌅
• أدعية وأذكار منتقاة 🤲
• محتوى إسلامي هادف ومميز ✨

🚀 بعد الاشتراك، اضغط على زر التحقق`

const MsgSubscriptionVerified = `✅ تم التحقق بنجاح!

🌟 أهلاً بك في عالم القرآن الكريم ☁️

تم تفعيل حسابك بنجاح! يمكنك الآن الاستمتاع بجميع ميزات البوت.`

const MsgSubscriptionMissing = `❌ لم يتم العثور على اشتراكك

يبدو أنك لم تشترك في القناة بعد.

📌 خطوات الاشتراك:
1. اضغط على زر 'اشترك في القناة'
2. انتظر حتى يتم تحميل القناة
3. اضغط على زر 'اشتراك' أو 'Join'
4. عد للبوت واضغط على 'تحقق من الاشتراك'`

const MsgSearchIntro = `🔍 البحث الذكي في القرآن الكريم

🌟 اكتب الكلمة أو الجملة التي تريد البحث عنها:

💡 أمثلة:
• 'الرحمن الرحيم'
• 'الصبر واليقين'
• 'آيات عن الصلاة'`

const (
	MsgSearchUnavailable = "⚠️ ميزة البحث الذكي غير متاحة حالياً\n\n🔧 السبب: لم يتم إعداد مفتاح الذكاء الاصطناعي."
	MsgSearchTooShort    = "🔍 أدخل كلمة مكونة من 3 أحرف على الأقل."
	MsgSearching         = "🔍 جاري البحث..."
	MsgSearchResults     = "🔍 نتائج البحث عن: \"%s\"\n\n%s"
	MsgSearchFailed      = "❌ حدث خطأ في البحث. حاول مرة أخرى لاحقاً."
)

const (
	MsgUnknownCommand    = "🤔 أمر غير معروف.\n\nأرسل /start لعرض القائمة الرئيسية."
	MsgHandlerFailed     = "⚠️ عذراً، حدث خطأ أثناء معالجة طلبك. حاول مرة أخرى لاحقاً."
	MsgSurahLoadFailed   = "❌ عذراً: حدث خطأ في تحميل بيانات السورة."
	MsgSurahListFailed   = "❌ حدث خطأ في تحميل السور."
	MsgPageLoadFailed    = "❌ تعذر تحميل الصفحة حالياً."
	MsgFeatureInProgress = "🚧 الميزة قيد التطوير!"
	MsgToBeContinued     = "\n...يتبع"
)

// MsgSurahList heads the paginated surah browser. The verbs take the
// list page, the page total and the first and last surah number shown.
const MsgSurahList = `📖 المصحف الشريف - النسخة النصية

📄 الصفحة: %d من %d
🔢 السور: %d - %d

✨ اختر السورة:`

const MsgAudioLibrary = `🎵 مكتبة التلاوات الصوتية

✨ اختر سورة لتستمع إلى تلاوتها:`

const MsgSurahCard = `📖 سورة %s (%s)

📊 المعلومات:
• 🔢 الرقم: %d
• 📝 الآيات: %d
• 📍 النزول: %s

🌟 اختر الإجراء:`

const (
	MsgSurahHeading    = "📖 سورة %s (%s)\n\n"
	MsgPageHeading     = "📖 الصفحة %d من %d\n\n"
	MsgPageSurahMark   = "📖 سورة %s\n\n"
	MsgAudioPrompt     = "🎵 أرسل الأمر مع رقم السورة، مثال: /audio 36"
	MsgAudioPick       = "🎵 اختر القارئ لسورة %s:"
	MsgAudioLoading    = "⏳ جاري التحميل..."
	MsgAudioSent       = "🌟 تم إرسال التلاوة بنجاح!\n\n🎧 القارئ: %s"
	MsgAudioMissing    = "❌ تعذر العثور على التلاوة."
	MsgAudioNoReciters = "❌ لا يوجد قراء متاحين حالياً."
	MsgAudioFallback   = "⚠️ تعذر إرسال الملف مباشرة\n\n🎧 لكن يمكنك الاستماع من الرابط:\n%s"
	MsgRadioInvite     = "📻 راديو سطور من السماء\n\n🎧 بث مباشر لتلاوات عطرة على مدار الساعة. اضغط الزر أدناه للاستماع:"
	MsgRadioOffline    = "📻 الراديو غير متاح حالياً."
	MsgDailyVerse      = "🌅 آية اليوم\n\n%s\n\n📖 سورة %s ﴿%d﴾"
	MsgSurahPrompt     = "📖 أرسل الأمر مع رقم السورة، مثال: /surah 36"
	MsgPagePrompt      = "📖 أرسل الأمر مع رقم الصفحة (1-604)، مثال: /page 255"
	MsgBadNumber       = "❌ رقم غير صالح."
)

// Inline keyboard labels.
const (
	BtnSubscribe   = "🔔 اشترك في القناة"
	BtnVerify      = "✅ تحقق من الاشتراك"
	BtnVerifyAgain = "🔄 تحقق من الاشتراك"
	BtnRadio       = "📻 راديو سطور من السماء"
	BtnBrowseText  = "📖 تصفح المصحف النصي"
	BtnSearch      = "🔍 بحث ذكي في القرآن"
	BtnAudioLib    = "🎵 مكتبة التلاوات"
	BtnDeveloper   = "👨‍💻 المطور & الدعم"
	BtnHome        = "🏠 الرئيسية"
	BtnPrev        = "⬅️ السابق"
	BtnNext        = "التالي ➡️"
	BtnPrevPage    = "⬅️ الصفحة السابقة"
	BtnNextPage    = "الصفحة التالية ➡️"
	BtnMoreAudio   = "🎵 تلاوات أخرى"
	BtnBackAudio   = "🔙 العودة"
	BtnRead        = "📖 قراءة السورة"
	BtnListen      = "🎵 الاستماع للتلاوات"
	BtnNewSearch   = "🔍 بحث جديد"
	BtnContinue    = "متابعة ➡️"
	BtnBackToSurah = "⬅️ عودة"
	BtnOpenRadio   = "🎧 فتح الراديو"
)

// SearchSystemPrompt frames free-text queries for the AI backend. The user
// text itself is passed through untouched.
const SearchSystemPrompt = `أنت مساعد للبحث في القرآن الكريم. ابحث في القرآن عن موضوع المستخدم وأعطه النتائج مع ذكر:
1. السورة ورقم الآية
2. نص الآية
3. تفسير مختصر
أجب باللغة العربية فقط.`
